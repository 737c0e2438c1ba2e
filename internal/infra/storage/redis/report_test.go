package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gabapcia/validatorwatch/internal/activityscan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PublishReport(t *testing.T) {
	report := activityscan.Report{
		FromBlock: 101,
		ToBlock:   105,
		Head:      200,
		ScannedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Validators: map[string]activityscan.ValidatorActivity{
			"A": {Authored: []activityscan.Entry{{Block: 101, Time: 1_700_000_606}}},
		},
		HasMore: true,
		Skipped: []activityscan.SkippedBlock{{Block: 103, Reason: "events unavailable"}},
	}

	t.Run("appends to the network stream", func(t *testing.T) {
		c, srv := newTestClient(t)

		require.NoError(t, c.PublishReport(t.Context(), "polkadot", report))

		entries, err := srv.Stream("activity:reports:polkadot")
		require.NoError(t, err)
		require.Len(t, entries, 1)

		values := map[string]string{}
		for i := 0; i+1 < len(entries[0].Values); i += 2 {
			values[entries[0].Values[i]] = entries[0].Values[i+1]
		}
		assert.Equal(t, "101", values["fromBlock"])
		assert.Equal(t, "105", values["toBlock"])

		var decoded activityscan.Report
		require.NoError(t, json.Unmarshal([]byte(values["report"]), &decoded))
		assert.Equal(t, report, decoded)
	})

	t.Run("stream is trimmed", func(t *testing.T) {
		c, srv := newTestClient(t, WithReportStreamLen(2))

		for range 4 {
			require.NoError(t, c.PublishReport(t.Context(), "polkadot", report))
		}

		entries, err := srv.Stream("activity:reports:polkadot")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
