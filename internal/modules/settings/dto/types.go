package dto

type DurationsInput struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

type DurationsOutput struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

type SettingOutput struct {
	Key   string
	Value string
}
