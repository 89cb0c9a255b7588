package trial

import "fmt"

// ConfigurationError reports a descriptor that cannot produce a runnable
// trial. It is fatal at setup: collectors refuse to begin a session on a
// malformed descriptor instead of failing mid-trial.
type ConfigurationError struct {
	// Subject names the field, rule kind, or group tag the problem refers
	// to. It may be empty for trial-level problems.
	Subject string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("trial: %s", e.Reason)
	}
	return fmt.Sprintf("trial: %s: %s", e.Subject, e.Reason)
}

func configErr(subject, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
