package models

// DigestSettings configures the weekly leadership digest. Stored as a
// singleton record.
type DigestSettings struct {
	Enabled         bool   `json:"enabled"`
	RecipientEmails string `json:"recipient_emails"`
	ScheduleDay     string `json:"schedule_day"`
	ScheduleTime    string `json:"schedule_time"`
	LookbackDays    int    `json:"lookback_days"`
	TopN            int    `json:"top_n"`
}

// DefaultDigestSettings returns the settings used before an admin has
// ever saved any.
func DefaultDigestSettings() DigestSettings {
	return DigestSettings{
		Enabled:         false,
		RecipientEmails: "",
		ScheduleDay:     "monday",
		ScheduleTime:    "09:00",
		LookbackDays:    7,
		TopN:            5,
	}
}
