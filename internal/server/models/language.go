package models

// Language is one catalog entry: a unique display name and the code the
// translation and speech engines understand.
type Language struct {
	ID   int64
	Name string
	Code string
}
