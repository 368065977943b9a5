// Package i18n centralises the French user-facing message catalog.
package i18n

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var printer = message.NewPrinter(language.French, message.Catalog(newCatalog()))

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	_ = b.Set(language.French, "%d entrées créées", plural.Selectf(1, "%d",
		plural.One, "1 entrée créée avec succès",
		plural.Other, "%[1]d entrées créées avec succès"))
	_ = b.Set(language.French, "%d entrées modifiées", plural.Selectf(1, "%d",
		plural.One, "1 entrée modifiée avec succès",
		plural.Other, "%[1]d entrées modifiées avec succès"))
	_ = b.Set(language.French, "%d entrées supprimées", plural.Selectf(1, "%d",
		plural.One, "1 entrée supprimée",
		plural.Other, "%[1]d entrées supprimées"))
	return b
}

// EntreesCreees returns the count-aware success message for stock-in creation.
func EntreesCreees(n int) string {
	return printer.Sprintf("%d entrées créées", n)
}

// EntreesModifiees returns the count-aware success message for a BL update.
func EntreesModifiees(n int) string {
	return printer.Sprintf("%d entrées modifiées", n)
}

// EntreesSupprimees returns the count-aware message for a BL group delete.
func EntreesSupprimees(n int) string {
	return printer.Sprintf("%d entrées supprimées", n)
}

// FieldError translates a validator tag into a French field message.
func FieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire"
	case "email":
		return "Adresse e-mail invalide"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return "Doit contenir au moins " + fe.Param() + " caractères"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "Au moins " + fe.Param() + " élément(s) requis"
		default:
			return "Valeur trop petite (minimum " + fe.Param() + ")"
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return "Doit contenir au plus " + fe.Param() + " caractères"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "Au plus " + fe.Param() + " élément(s) autorisé(s)"
		default:
			return "Valeur trop grande (maximum " + fe.Param() + ")"
		}
	case "gt":
		return "Doit être supérieur à " + fe.Param()
	case "gte":
		return "Doit être supérieur ou égal à " + fe.Param()
	case "lte":
		return "Doit être inférieur ou égal à " + fe.Param()
	case "numeric":
		return "Doit être un nombre"
	case "boolean":
		return "Valeur booléenne attendue"
	default:
		return "Valeur invalide"
	}
}

const (
	// MsgForbidden is the localized permission-denied message.
	MsgForbidden = "Vous n'avez pas la permission d'effectuer cette action"
	// MsgStorageFailure is the generic persistence error message.
	MsgStorageFailure = "Une erreur est survenue, veuillez réessayer"
	// MsgNotFound is the generic missing-record message.
	MsgNotFound = "Enregistrement introuvable"
	// MsgDuplicate surfaces a storage-level unique violation that slipped
	// past the pre-checks.
	MsgDuplicate = "Cet enregistrement existe déjà"
	// MsgInUse is shown when a delete fails because other rows still
	// reference the record.
	MsgInUse = "Impossible de supprimer : l'enregistrement est encore utilisé"
)
