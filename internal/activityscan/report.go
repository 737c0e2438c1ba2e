package activityscan

import (
	"time"

	"github.com/gabapcia/validatorwatch/internal/pkg/types"
)

// Entry is one authored block or one heartbeat.
type Entry struct {
	Block uint64 `json:"block"`
	Time  int64  `json:"time"`
}

// ValidatorActivity lists a validator's entries in the order they were found.
type ValidatorActivity struct {
	Authored   []Entry `json:"authored"`
	Heartbeats []Entry `json:"heartbeats"`
}

// IsEmpty reports whether the validator did nothing in the scanned range.
func (a ValidatorActivity) IsEmpty() bool {
	return len(a.Authored) == 0 && len(a.Heartbeats) == 0
}

// SkippedBlock is a block that could not be fetched or decoded.
type SkippedBlock struct {
	Block  uint64 `json:"block"`
	Reason string `json:"reason"`
}

// Report is the result of one scan. It is best-effort: blocks listed in
// Skipped contributed nothing. When HasMore is true, scan again with
// StartBlock set to ToBlock.
type Report struct {
	FromBlock  uint64                       `json:"fromBlock"`
	ToBlock    uint64                       `json:"toBlock"`
	Head       uint64                       `json:"head"`
	ScannedAt  time.Time                    `json:"scannedAt"`
	Validators map[string]ValidatorActivity `json:"validators"`
	HasMore    bool                         `json:"hasMore"`
	Skipped    []SkippedBlock               `json:"skipped"`
}

// BlockRecord is one successfully fetched block.
type BlockRecord struct {
	Number     uint64
	Hash       string
	Time       int64
	Author     string
	Heartbeats []AuthorityKey
}

// aggregator collects entries per current validator.
type aggregator struct {
	validators types.Set[string]
	activity   types.DefaultMap[string, *ValidatorActivity]
}

func newAggregator(validators []string) *aggregator {
	set := types.NewSet[string]()
	for _, v := range validators {
		set.Add(NormalizeAddress(v))
	}

	return &aggregator{
		validators: set,
		activity: types.NewDefaultMap[string](func() *ValidatorActivity {
			return &ValidatorActivity{Authored: []Entry{}, Heartbeats: []Entry{}}
		}),
	}
}

// addAuthored records a block for author. Addresses outside the validator set are dropped.
func (a *aggregator) addAuthored(author string, entry Entry) bool {
	author = NormalizeAddress(author)
	if author == "" || !a.validators.Contains(author) {
		return false
	}

	v := a.activity.Get(author)
	v.Authored = append(v.Authored, entry)
	return true
}

// addHeartbeat records a heartbeat for owner, at most once per block.
// Addresses outside the validator set are dropped.
func (a *aggregator) addHeartbeat(owner string, entry Entry) bool {
	owner = NormalizeAddress(owner)
	if owner == "" || !a.validators.Contains(owner) {
		return false
	}

	v := a.activity.Get(owner)
	if n := len(v.Heartbeats); n > 0 && v.Heartbeats[n-1].Block == entry.Block {
		return false
	}
	v.Heartbeats = append(v.Heartbeats, entry)
	return true
}

// result returns the non-empty activities.
func (a *aggregator) result() map[string]ValidatorActivity {
	out := make(map[string]ValidatorActivity, a.activity.Len())
	for _, address := range a.activity.Keys() {
		v, _ := a.activity.Lookup(address)
		if v.IsEmpty() {
			continue
		}
		out[address] = *v
	}

	return out
}
