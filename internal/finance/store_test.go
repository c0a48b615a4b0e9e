package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fincontrol/internal/core"
	"fincontrol/internal/stats"
	"fincontrol/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	blob := storage.NewMemoryStore()
	var seq int
	s := Open(context.Background(), blob,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return s, blob
}

func TestOpenFreshStore(t *testing.T) {
	s, blob := newTestStore(t)

	if got := s.CurrentMonth(); got != "2024-03" {
		t.Fatalf("expected current month 2024-03, got %s", got)
	}
	if len(s.Categories()) != 9 {
		t.Fatal("fresh store should carry the seeded categories")
	}
	if len(s.Cards()) != 0 || len(s.SavingsGoals()) != 0 {
		t.Fatal("fresh store should have no cards or goals")
	}
	rec := s.CurrentRecord()
	if rec.Month != "2024-03" || rec.Salary != 0 || len(rec.Expenses) != 0 {
		t.Fatalf("current record should be the lazily created empty one, got %+v", rec)
	}
	if blob.SaveCount() == 0 {
		t.Fatal("opening should persist the initialized aggregate")
	}
}

func TestOpenReloadsPersistedData(t *testing.T) {
	blob := storage.NewMemoryStore()
	clock := func() time.Time { return testNow }

	s1 := Open(context.Background(), blob, WithClock(clock))
	card := s1.AddCard(context.Background(), core.CreditCard{Name: "Visa", Bank: "Acme", TotalLimit: 1000})
	s1.SetSalary(context.Background(), 4000)

	s2 := Open(context.Background(), blob, WithClock(clock))
	cards := s2.Cards()
	if len(cards) != 1 || cards[0].ID != card.ID {
		t.Fatalf("expected reloaded card, got %+v", cards)
	}
	if got := s2.CurrentRecord().Salary; got != 4000 {
		t.Fatalf("expected reloaded salary 4000, got %v", got)
	}
}

type failingBlob struct{}

func (failingBlob) Load(context.Context) (*core.FinanceData, error) {
	return nil, fmt.Errorf("decode snapshot: unexpected end of JSON input")
}
func (failingBlob) Save(context.Context, *core.FinanceData) error { return nil }
func (failingBlob) Close() error                                  { return nil }

func TestOpenWithMalformedBlobStartsFresh(t *testing.T) {
	s := Open(context.Background(), failingBlob{},
		WithClock(func() time.Time { return testNow }))
	if len(s.Categories()) != 9 {
		t.Fatal("malformed persisted data should be replaced by fresh seeded state")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	s, blob := newTestStore(t)
	ctx := context.Background()
	base := blob.SaveCount()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa"})
	s.UpdateCard(ctx, card)
	s.SetSalary(ctx, 100)
	s.AddExtraIncome(ctx, core.Income{Amount: 10})
	exp := s.AddExpense(ctx, core.Expense{Amount: 5, CategoryID: "food", Date: "2024-03-01"})
	s.UpdateExpense(ctx, exp)
	s.DeleteExpense(ctx, exp.ID)
	goal := s.AddSavingsGoal(ctx, core.SavingsGoal{Name: "Trip"})
	s.UpdateSavingsGoal(ctx, goal)
	s.DeleteSavingsGoal(ctx, goal.ID)
	s.DeleteCard(ctx, card.ID)

	if got := blob.SaveCount() - base; got != 11 {
		t.Fatalf("expected 11 saves for 11 mutations, got %d", got)
	}
}

func TestCardCRUD(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", Bank: "Acme", TotalLimit: 1000, ClosingDay: 5, DueDay: 12})
	if card.ID == "" {
		t.Fatal("AddCard must assign an id")
	}

	card.Name = "Visa Gold"
	s.UpdateCard(ctx, card)
	if got := s.Cards()[0].Name; got != "Visa Gold" {
		t.Fatalf("expected updated name, got %s", got)
	}

	// Updating an unknown id is a no-op.
	s.UpdateCard(ctx, core.CreditCard{ID: "nope", Name: "ghost"})
	if got := len(s.Cards()); got != 1 {
		t.Fatalf("expected 1 card, got %d", got)
	}

	s.DeleteCard(ctx, card.ID)
	if got := len(s.Cards()); got != 0 {
		t.Fatalf("expected 0 cards after delete, got %d", got)
	}
}

func TestDeleteCardLeavesExpensesDangling(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000})
	s.AddExpense(ctx, core.Expense{Amount: 100, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "food", Date: "2024-03-01"})
	s.DeleteCard(ctx, card.ID)

	rec := s.CurrentRecord()
	if len(rec.Expenses) != 1 {
		t.Fatal("deleting a card must not cascade to expenses")
	}
	if rec.Expenses[0].CardID != card.ID {
		t.Fatal("expense should keep its dangling cardId")
	}
	// Aggregation still tolerates the dangling reference.
	if got := stats.CardUsage(rec, card.ID); got != 100 {
		t.Fatalf("expected usage 100 over dangling card, got %v", got)
	}
}

func TestCategoryCRUD(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cat := s.AddCategory(ctx, core.Category{Name: "Pets", Icon: "Heart", Color: "hsl(0 0% 0%)"})
	if !cat.IsCustom {
		t.Fatal("added categories must be custom")
	}

	cat.Name = "Pet care"
	s.UpdateCategory(ctx, cat)
	cats := s.Categories()
	if cats[len(cats)-1].Name != "Pet care" {
		t.Fatal("category update not applied")
	}

	// Custom categories can be deleted.
	s.DeleteCategory(ctx, cat.ID)
	if got := len(s.Categories()); got != 9 {
		t.Fatalf("expected 9 categories after deleting custom, got %d", got)
	}
}

func TestDeleteSeededCategoryIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"food", "transport", "other"} {
		s.DeleteCategory(ctx, id)
	}
	if got := len(s.Categories()); got != 9 {
		t.Fatalf("seeded categories must never be deleted, got %d", got)
	}
}

func TestSeededCategoriesAreEditable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.UpdateCategory(ctx, core.Category{ID: "food", Name: "Groceries", Icon: "UtensilsCrossed", Color: "hsl(38 92% 50%)"})
	for _, c := range s.Categories() {
		if c.ID == "food" && c.Name != "Groceries" {
			t.Fatal("seeded category should be editable")
		}
	}
}

func TestSalaryOverwriteAndExtraIncomeAccumulate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetSalary(ctx, 5000)
	s.SetSalary(ctx, 3000)
	s.AddExtraIncome(ctx, core.Income{Amount: 200, Date: "2024-03-10", Description: "freelance"})
	s.AddExtraIncome(ctx, core.Income{Amount: 300})

	rec := s.CurrentRecord()
	if rec.Salary != 3000 {
		t.Fatalf("salary must be overwritten, got %v", rec.Salary)
	}
	if rec.ExtraIncome != 500 {
		t.Fatalf("extra income must accumulate, got %v", rec.ExtraIncome)
	}
	if got := stats.TotalIncome(rec); got != 3500 {
		t.Fatalf("expected total income 3500, got %v", got)
	}
}

func TestUsedLimitTracksAddAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000, UsedLimit: 100})

	e1 := s.AddExpense(ctx, core.Expense{Amount: 250, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "food", Date: "2024-03-01"})
	e2 := s.AddExpense(ctx, core.Expense{Amount: 150, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "bills", Date: "2024-03-02"})
	if got := s.Cards()[0].UsedLimit; got != 500 {
		t.Fatalf("expected used limit 500 after adds, got %v", got)
	}

	s.DeleteExpense(ctx, e1.ID)
	if got := s.Cards()[0].UsedLimit; got != 250 {
		t.Fatalf("expected used limit 250 after delete, got %v", got)
	}
	s.DeleteExpense(ctx, e2.ID)
	if got := s.Cards()[0].UsedLimit; got != 100 {
		t.Fatalf("expected used limit back at baseline 100, got %v", got)
	}
}

func TestUsedLimitFlooredAtZero(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000, UsedLimit: 0})
	e := s.AddExpense(ctx, core.Expense{Amount: 300, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "food", Date: "2024-03-01"})

	// Drop the stored limit out from under the expense, then delete it.
	card = s.Cards()[0]
	card.UsedLimit = 50
	s.UpdateCard(ctx, card)

	s.DeleteExpense(ctx, e.ID)
	if got := s.Cards()[0].UsedLimit; got != 0 {
		t.Fatalf("used limit must floor at 0, got %v", got)
	}
}

func TestDebitExpenseLeavesUsedLimitAlone(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000, UsedLimit: 100})
	e := s.AddExpense(ctx, core.Expense{Amount: 250, PaymentMethod: core.Debit, CategoryID: "food", Date: "2024-03-01"})
	if got := s.Cards()[0].UsedLimit; got != 100 {
		t.Fatalf("debit expense must not touch used limit, got %v", got)
	}
	s.DeleteExpense(ctx, e.ID)
	if got := s.Cards()[0].UsedLimit; got != 100 {
		t.Fatalf("deleting debit expense must not touch used limit, got %v", got)
	}
}

func TestUpdateExpenseDoesNotReconcileUsedLimit(t *testing.T) {
	// Only add and delete adjust the card's used limit. Editing the amount
	// leaves the stored limit where it was; this pins the established
	// asymmetry.
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000})
	e := s.AddExpense(ctx, core.Expense{Amount: 200, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "food", Date: "2024-03-01"})

	e.Amount = 900
	s.UpdateExpense(ctx, e)

	if got := s.Cards()[0].UsedLimit; got != 200 {
		t.Fatalf("update must not reconcile used limit, got %v", got)
	}
	rec := s.CurrentRecord()
	if got := rec.Expenses[0].Amount; got != 900 {
		t.Fatalf("expense amount should be updated, got %v", got)
	}
	// Derived usage now diverges from the stored limit, by design of the
	// update path.
	if got := stats.CardUsage(rec, card.ID); got != 900 {
		t.Fatalf("derived usage should follow the expense list, got %v", got)
	}
}

func TestExpenseInsertionOrderPreserved(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i, amount := range []float64{10, 20, 30} {
		s.AddExpense(ctx, core.Expense{Amount: amount, CategoryID: "food", Date: fmt.Sprintf("2024-03-%02d", 10-i)})
	}
	rec := s.CurrentRecord()
	for i, want := range []float64{10, 20, 30} {
		if rec.Expenses[i].Amount != want {
			t.Fatalf("expense %d out of order: %+v", i, rec.Expenses)
		}
	}
}

func TestExpenseFiledUnderCurrentMonthNotOwnDate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Dated in January but added while March is current: stays in March.
	s.AddExpense(ctx, core.Expense{Amount: 42, CategoryID: "food", Date: "2024-01-05"})

	rec := s.CurrentRecord()
	if len(rec.Expenses) != 1 || rec.Expenses[0].Date != "2024-01-05" {
		t.Fatalf("expense should live under 2024-03 with its own date intact, got %+v", rec.Expenses)
	}
	if jan := s.Snapshot().MonthlyData["2024-01"]; len(jan.Expenses) != 0 {
		t.Fatal("expense must not be bucketed by its own date")
	}
}

func TestSetCurrentMonthLazyCreation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetCurrentMonth(ctx, "2023-11")
	if got := s.CurrentMonth(); got != "2023-11" {
		t.Fatalf("expected 2023-11, got %s", got)
	}
	rec := s.CurrentRecord()
	if rec.Month != "2023-11" || rec.Salary != 0 || rec.ExtraIncome != 0 || len(rec.Expenses) != 0 {
		t.Fatalf("selected month should get a zeroed record, got %+v", rec)
	}

	// Mutations target the newly selected month.
	s.SetSalary(ctx, 1234)
	s.SetCurrentMonth(ctx, "2024-03")
	if got := s.Snapshot().MonthlyData["2023-11"].Salary; got != 1234 {
		t.Fatalf("expected salary on 2023-11, got %v", got)
	}
}

func TestAvailableMonths(t *testing.T) {
	s, _ := newTestStore(t)
	months := s.AvailableMonths()
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[0] != "2024-03" || months[11] != "2023-04" {
		t.Fatalf("unexpected window: first=%s last=%s", months[0], months[11])
	}
}

func TestSavingsGoalCRUD(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	goal := s.AddSavingsGoal(ctx, core.SavingsGoal{Name: "Trip", TargetAmount: 3000, CurrentAmount: 500, Deadline: "2024-12-31"})
	if goal.ID == "" {
		t.Fatal("AddSavingsGoal must assign an id")
	}

	goal.CurrentAmount = 800
	s.UpdateSavingsGoal(ctx, goal)
	if got := s.SavingsGoals()[0].CurrentAmount; got != 800 {
		t.Fatalf("expected updated amount 800, got %v", got)
	}

	s.DeleteSavingsGoal(ctx, goal.ID)
	if got := len(s.SavingsGoals()); got != 0 {
		t.Fatalf("expected 0 goals after delete, got %d", got)
	}
}

func TestCreditScenarioTriggersDangerAlert(t *testing.T) {
	// Empty store -> add card 1000 limit -> 900 credit expense -> danger.
	s, _ := newTestStore(t)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa", TotalLimit: 1000, UsedLimit: 0})
	s.AddExpense(ctx, core.Expense{Amount: 900, PaymentMethod: core.Credit, CardID: card.ID, CategoryID: "food", Date: "2024-03-05"})

	alerts := stats.Alerts(s.Cards(), s.CurrentRecord())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %+v", alerts)
	}
	if alerts[0].Severity != stats.SeverityDanger {
		t.Fatalf("expected danger at 90%% usage, got %s", alerts[0].Severity)
	}
}

func TestLowBalanceScenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SetSalary(ctx, 5000)
	s.AddExtraIncome(ctx, core.Income{Amount: 500})
	s.AddExpense(ctx, core.Expense{Amount: 4600, CategoryID: "bills", Date: "2024-03-01"})

	rec := s.CurrentRecord()
	if got := stats.AvailableBalance(rec); got != 900 {
		t.Fatalf("expected balance 900, got %v", got)
	}
	// 900 >= 550, so no warning.
	if alerts := stats.Alerts(nil, rec); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}

	// income 1000, expenses 950 -> balance 50 < 100 -> warning appears.
	s.SetCurrentMonth(ctx, "2024-04")
	s.SetSalary(ctx, 1000)
	s.AddExpense(ctx, core.Expense{Amount: 950, CategoryID: "bills", Date: "2024-04-01"})
	rec = s.CurrentRecord()
	alerts := stats.Alerts(nil, rec)
	if len(alerts) != 1 || alerts[0].Severity != stats.SeverityWarning {
		t.Fatalf("expected low-balance warning, got %+v", alerts)
	}
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) PublishChange(_ context.Context, entity, op, id, month string) error {
	n.events = append(n.events, entity+":"+op)
	return nil
}

func TestMutationsNotify(t *testing.T) {
	blob := storage.NewMemoryStore()
	notifier := &recordingNotifier{}
	s := Open(context.Background(), blob,
		WithClock(func() time.Time { return testNow }),
		WithNotifier(notifier),
	)
	ctx := context.Background()

	card := s.AddCard(ctx, core.CreditCard{Name: "Visa"})
	s.SetSalary(ctx, 100)
	exp := s.AddExpense(ctx, core.Expense{Amount: 1, CategoryID: "food", Date: "2024-03-01"})
	s.DeleteExpense(ctx, exp.ID)
	s.DeleteCard(ctx, card.ID)

	want := []string{"card:add", "income:set", "expense:add", "expense:delete", "card:delete"}
	if len(notifier.events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), notifier.events)
	}
	for i, ev := range want {
		if notifier.events[i] != ev {
			t.Errorf("event %d: expected %s, got %s", i, ev, notifier.events[i])
		}
	}
}

type failingNotifier struct{}

func (failingNotifier) PublishChange(context.Context, string, string, string, string) error {
	return fmt.Errorf("broker unavailable")
}

func TestNotifierFailureDoesNotBlockMutations(t *testing.T) {
	blob := storage.NewMemoryStore()
	s := Open(context.Background(), blob,
		WithClock(func() time.Time { return testNow }),
		WithNotifier(failingNotifier{}),
	)
	s.AddCard(context.Background(), core.CreditCard{Name: "Visa"})
	if len(s.Cards()) != 1 {
		t.Fatal("mutation must succeed even when notification fails")
	}
}
