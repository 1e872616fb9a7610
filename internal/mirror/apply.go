package mirror

import "github.com/rafaelq/fieldlog/internal/store"

// Apply wholesale-replaces local collections with the pulled ones, but only
// for keys the remote actually returned. A pulled tractor list is applied
// as-is; no reconciliation against pulled logs is attempted.
func Apply(st *store.Store, res *PullResult) error {
	if res.HasLogs {
		if err := st.ReplaceLogs(res.Logs); err != nil {
			return err
		}
	}
	if res.HasTractors {
		if err := st.ReplaceTractors(res.Tractors); err != nil {
			return err
		}
	}
	if res.HasUsers {
		if err := st.ReplaceUsers(res.Users); err != nil {
			return err
		}
	}
	return nil
}
