package sqlite_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSubmission(name, email string) sqlite.Submission {
	return sqlite.Submission{
		StudentName:  name,
		StudentEmail: email,
		Scenario:     "classic",
		Location:     engine.LocationHillside,
		Marketing:    engine.MarketingConservative,
		Receivables:  engine.ReceiveCashOnly,
		Purchases: [engine.HorizonMonths]engine.PurchaseOrder{
			{Quantity: 100, Term: engine.PayCash},
			{Quantity: 50, Term: engine.PayInstallment},
			{Quantity: 0, Term: engine.PayCash},
		},
		FinalCash: decimal.RequireFromString("-603706.875"),
		Statement: "Student: sample\n",
	}
}

func TestAppendAndList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	saved, err := store.Append(ctx, sampleSubmission("Ana Lima", "ana@example.edu"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	_, err = store.Append(ctx, sampleSubmission("Bruno Dias", "bruno@example.edu"))
	require.NoError(t, err)

	subs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	got := subs[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Ana Lima", got.StudentName)
	assert.Equal(t, engine.LocationHillside, got.Location)
	assert.Equal(t, engine.PayInstallment, got.Purchases[1].Term)
	assert.Equal(t, 50, got.Purchases[1].Quantity)
	assert.True(t, got.FinalCash.Equal(decimal.RequireFromString("-603706.875")),
		"final cash survives the round trip exactly, got %s", got.FinalCash)
}

func TestResubmissionAppendsNewRow(t *testing.T) {
	// Same student twice: both rows survive, nothing is overwritten.
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, sampleSubmission("Ana Lima", "ana@example.edu"))
	require.NoError(t, err)
	second, err := store.Append(ctx, sampleSubmission("Ana Lima", "ana@example.edu"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	subs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestExportCSV(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, sampleSubmission("Ana Lima", "ana@example.edu"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Name,Email,Scenario,Location,Marketing,Receivables,Purchase 1 Qty,Purchase 1 Term,Purchase 2 Qty,Purchase 2 Term,Purchase 3 Qty,Purchase 3 Term,Final Cash,Submitted At",
		lines[0])
	assert.Contains(t, lines[1], "Ana Lima,ana@example.edu,classic,hillside,conservative,cash_only,100,cash,50,installment,0,cash,-603706.875")
}

func TestExportCSV_EmptyArchiveStillWritesHeader(t *testing.T) {
	store := newStore(t)

	var buf bytes.Buffer
	require.NoError(t, store.ExportCSV(context.Background(), &buf))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(buf.String()), "\n")+1)
}
