package constants

const (
	AppName = "chorewheel"

	// DateFormat is the standard date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"
	// TimeFormat is the standard time format (HH:MM)
	TimeFormat = "15:04"

	// MorningReminderTime is the local time morning-shift reminders fire
	MorningReminderTime = "08:00"
	// NightReminderTime is the local time night-shift reminders fire
	NightReminderTime = "16:00"
	// MissSweepTime is the local time the nightly miss sweep runs
	MissSweepTime = "23:55"

	DefaultTimezone  = "Local"
	DefaultStateFile = "~/.config/chorewheel/chorewheel.json"

	// DefaultKeyringUser is the keyring account name for the Postgres DSN
	DefaultKeyringUser = "db-connection"

	// AgentLockfileName is the lockfile written by the delivery agent,
	// containing "port|pid|secret"
	AgentLockfileName = "agent.lock"
	// AgentExecutablePrefix identifies the delivery agent process
	AgentExecutablePrefix = "chorewheel-agent"
)
