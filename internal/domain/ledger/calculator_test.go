package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essenza/backend/internal/domain/partner"
)

func entry(partnerID string, amount float64) *PartnerLedgerEntry {
	return &PartnerLedgerEntry{
		ID:        partnerID + "-entry",
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PartnerID: partnerID,
		Amount:    decimal.NewFromFloat(amount),
	}
}

func partnerList(names ...string) []*partner.Partner {
	out := make([]*partner.Partner, 0, len(names))
	for _, n := range names {
		out = append(out, &partner.Partner{ID: n, Name: n})
	}
	return out
}

func TestBalance(t *testing.T) {
	entries := []*PartnerLedgerEntry{
		entry("anna", 300),
		entry("anna", -50),
		entry("bruno", 100),
	}

	assert.True(t, Balance(entries, "anna").Equal(decimal.NewFromInt(250)))
	assert.True(t, Balance(entries, "bruno").Equal(decimal.NewFromInt(100)))
	assert.True(t, Balance(entries, "carla").IsZero())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, BalanceStatusDebtor, StatusFor(decimal.NewFromFloat(0.02)))
	assert.Equal(t, BalanceStatusCreditor, StatusFor(decimal.NewFromFloat(-0.02)))
	assert.Equal(t, BalanceStatusBalanced, StatusFor(decimal.NewFromFloat(0.01)))
	assert.Equal(t, BalanceStatusBalanced, StatusFor(decimal.NewFromFloat(-0.01)))
	assert.Equal(t, BalanceStatusBalanced, StatusFor(decimal.Zero))
}

func TestPlan(t *testing.T) {
	t.Run("single debtor pays the single creditor", func(t *testing.T) {
		partners := partnerList("anna", "bruno", "carla")
		entries := []*PartnerLedgerEntry{
			entry("anna", 600),
			entry("bruno", 300),
			// carla holds nothing; target is 300 each
		}

		transfers := Plan(entries, partners)

		require.Len(t, transfers, 1)
		assert.Equal(t, "anna", transfers[0].FromPartnerID)
		assert.Equal(t, "carla", transfers[0].ToPartnerID)
		assert.True(t, transfers[0].Amount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("applying the plan zeroes every difference", func(t *testing.T) {
		partners := partnerList("anna", "bruno", "carla", "dario")
		entries := []*PartnerLedgerEntry{
			entry("anna", 1000),
			entry("bruno", 120),
			entry("carla", 60),
			entry("dario", 20),
		}
		target := TargetPerPartner(entries, partners)

		transfers := Plan(entries, partners)
		require.LessOrEqual(t, len(transfers), len(partners)-1)

		balances := map[string]decimal.Decimal{}
		for _, p := range partners {
			balances[p.ID] = Balance(entries, p.ID)
		}
		for _, tr := range transfers {
			balances[tr.FromPartnerID] = balances[tr.FromPartnerID].Sub(tr.Amount)
			balances[tr.ToPartnerID] = balances[tr.ToPartnerID].Add(tr.Amount)
		}
		for id, b := range balances {
			assert.True(t, b.Sub(target).Abs().LessThanOrEqual(Tolerance), "partner %s off target by %s", id, b.Sub(target))
		}
	})

	t.Run("balanced partners produce no transfers", func(t *testing.T) {
		partners := partnerList("anna", "bruno")
		entries := []*PartnerLedgerEntry{
			entry("anna", 150),
			entry("bruno", 150),
		}
		assert.Empty(t, Plan(entries, partners))
	})

	t.Run("cent differences are skipped", func(t *testing.T) {
		partners := partnerList("anna", "bruno")
		entries := []*PartnerLedgerEntry{
			entry("anna", 100.01),
			entry("bruno", 100),
		}
		assert.Empty(t, Plan(entries, partners))
	})

	t.Run("no partners no plan", func(t *testing.T) {
		assert.Empty(t, Plan(nil, nil))
	})
}

func TestSnapshot(t *testing.T) {
	partners := partnerList("anna", "bruno", "carla")
	entries := []*PartnerLedgerEntry{
		entry("anna", 600),
		entry("bruno", 300),
	}

	snapshots := Snapshot(entries, partners)

	require.Len(t, snapshots, 3)
	assert.Equal(t, "anna", snapshots[0].PartnerID)
	assert.Equal(t, BalanceStatusDebtor, snapshots[0].Status)
	assert.Equal(t, BalanceStatusBalanced, snapshots[1].Status)
	assert.Equal(t, BalanceStatusCreditor, snapshots[2].Status)
	assert.True(t, snapshots[0].Balance.Equal(decimal.NewFromInt(600)))
}

func TestRelatedTo(t *testing.T) {
	t.Run("matches a single document id", func(t *testing.T) {
		e := &PartnerLedgerEntry{RelatedDocumentID: "sale-1"}
		assert.True(t, e.RelatedTo("sale-1"))
		assert.False(t, e.RelatedTo("sale-2"))
	})

	t.Run("matches ids inside a comma-joined list", func(t *testing.T) {
		e := &PartnerLedgerEntry{RelatedDocumentID: JoinDocumentIDs([]string{"sale-1", "sale-2", "sale-3"})}
		assert.True(t, e.RelatedTo("sale-2"))
		assert.False(t, e.RelatedTo("sale-4"))
	})

	t.Run("empty ids never match", func(t *testing.T) {
		e := &PartnerLedgerEntry{}
		assert.False(t, e.RelatedTo("sale-1"))
		assert.False(t, (&PartnerLedgerEntry{RelatedDocumentID: "x"}).RelatedTo(""))
	})
}
