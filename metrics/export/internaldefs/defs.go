package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef binds an engine counter to its exported metric name.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs lists every engine counter in a stable export order.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricSessionStarted, Name: "gosession_session_started_total", Help: "Sessions created."},
	{ID: goSession.MetricSessionRefreshed, Name: "gosession_session_refreshed_total", Help: "Successful session loads with expiry refresh."},
	{ID: goSession.MetricSessionDestroyed, Name: "gosession_session_destroyed_total", Help: "Single-session logout operations."},
	{ID: goSession.MetricSessionsRevoked, Name: "gosession_sessions_revoked_total", Help: "Sessions destroyed by bulk revocation."},
	{ID: goSession.MetricRevokeAll, Name: "gosession_revoke_all_total", Help: "Bulk revocation operations."},
	{ID: goSession.MetricAuthSuccess, Name: "gosession_auth_success_total", Help: "Authentications that cleared every gate."},
	{ID: goSession.MetricAuthMissingToken, Name: "gosession_auth_missing_token_total", Help: "Requests presenting no session token."},
	{ID: goSession.MetricAuthRejected, Name: "gosession_auth_rejected_total", Help: "Tokens that resolved to no live session."},
	{ID: goSession.MetricAuthLowScore, Name: "gosession_auth_low_score_total", Help: "Live sessions rejected by trust scoring."},
	{ID: goSession.MetricAuthForbidden, Name: "gosession_auth_forbidden_total", Help: "Authenticated sessions lacking a required permission."},
	{ID: goSession.MetricStorageFailure, Name: "gosession_storage_failure_total", Help: "Store write or delete failures."},
}

// Trust-score histogram export names. Scores are discrete 0..5, so the
// highest bound doubles as +Inf.
const (
	ScoreHistogramName = "gosession_trust_score"
	ScoreHistogramHelp = "Distribution of trust scores observed during authentication."
)

// ScoreBounds are the Prometheus le labels, one per possible score plus
// +Inf.
var ScoreBounds = []string{"0", "1", "2", "3", "4", "5", "+Inf"}

// ScoreBoundSuffix mirrors ScoreBounds with identifier-safe suffixes for
// backends that forbid label syntax in instrument names.
var ScoreBoundSuffix = []string{"0", "1", "2", "3", "4", "5", "inf"}

// CumulativeScores converts per-score observation counts into cumulative
// bucket counts; the final element is the total sample count.
func CumulativeScores(raw [goSession.TrustFactorCount + 1]uint64) [goSession.TrustFactorCount + 2]uint64 {
	var out [goSession.TrustFactorCount + 2]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	out[len(out)-1] = running
	return out
}
