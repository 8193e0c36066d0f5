// Package analytics derives read-only reports from problem review records:
// the due queue, per-unit statistics, retention insights, study
// recommendations, and weak-problem lists. Every builder is a pure function
// of (records, now); the service wraps them behind store scans. Reports may
// run against a slightly stale snapshot, ordering within a report is
// deterministic.
package analytics
