package commerciaux

import "regexp"

// Moroccan mobile/landline numbers: 10 digits, leading 0 then 6, 7 or 1.
var phonePattern = regexp.MustCompile(`^0[671][0-9]{8}$`)

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
