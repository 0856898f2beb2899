package enums

// SettingType describes how a site setting value should be interpreted.
type SettingType string

const (
	SettingTypeText    SettingType = "text"
	SettingTypeImage   SettingType = "image"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeNumber  SettingType = "number"
)

// IsValid reports whether the value is a known SettingType.
func (s SettingType) IsValid() bool {
	switch s {
	case SettingTypeText, SettingTypeImage, SettingTypeBoolean, SettingTypeNumber:
		return true
	}
	return false
}
