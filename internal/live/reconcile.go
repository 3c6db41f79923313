package live

import "github.com/Mehak261124/AI-IDS/internal/api"

// Reconcile merges an incoming status snapshot with the previously accepted
// one. The incoming snapshot is accepted as-is - the server is the source
// of truth and stale polls still describe it better than old local state.
//
// The returned count is how many newly classified flows the caller should
// announce. It is positive only when all of these hold:
//
//   - the capture is still running (a final drain after stop is not news)
//   - the flow count grew since the previous snapshot
//   - a previous snapshot had already reported flows, so the first sight
//     of an existing session's backlog doesn't read as a burst
//
// A previous of nil means no snapshot has been accepted yet this session.
func Reconcile(previous *api.LiveStatus, incoming api.LiveStatus) (api.LiveStatus, int) {
	prevFlows := 0
	if previous != nil {
		prevFlows = previous.Flows
	}

	fresh := 0
	if incoming.Running && prevFlows > 0 && incoming.Flows > prevFlows {
		fresh = incoming.Flows - prevFlows
	}

	return incoming, fresh
}
