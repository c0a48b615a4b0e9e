package core

// PaymentMethod distinguishes how an expense was paid.
type PaymentMethod string

const (
	Debit  PaymentMethod = "debit"
	Credit PaymentMethod = "credit"
)

type (
	// CreditCard holds the user-managed card data. UsedLimit is tracked
	// procedurally: adding a credit expense bumps it, deleting one lowers it
	// (never below zero). It is not forced to stay within TotalLimit.
	CreditCard struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Bank       string  `json:"bank"`
		TotalLimit float64 `json:"totalLimit"`
		UsedLimit  float64 `json:"usedLimit"`
		ClosingDay int     `json:"closingDay"`
		DueDay     int     `json:"dueDay"`
		Color      string  `json:"color"`
	}

	// Category groups expenses. Seeded categories have IsCustom=false and
	// cannot be deleted; only user-created categories can.
	Category struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Icon     string `json:"icon"`
		Color    string `json:"color"`
		IsCustom bool   `json:"isCustom"`
	}

	// Expense is a single spending entry. CardID is set only for credit
	// payments. CardID and CategoryID may dangle after the referenced entity
	// is deleted; consumers must treat missing lookups as unknown.
	Expense struct {
		ID            string        `json:"id"`
		Amount        float64       `json:"amount"`
		Date          string        `json:"date"` // YYYY-MM-DD
		PaymentMethod PaymentMethod `json:"paymentMethod"`
		CardID        string        `json:"cardId,omitempty"`
		CategoryID    string        `json:"categoryId"`
		Description   string        `json:"description,omitempty"`
	}

	// Income is a transient input value for extra income. Only the amount
	// survives into the month's accumulator; date and description are not
	// retained.
	Income struct {
		Amount      float64
		Date        string
		Description string
	}

	// SavingsGoal is a global saving target, independent of any month.
	SavingsGoal struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		TargetAmount  float64 `json:"targetAmount"`
		CurrentAmount float64 `json:"currentAmount"`
		Deadline      string  `json:"deadline,omitempty"` // YYYY-MM-DD
	}

	// MonthlyRecord collects the income and expenses filed under one month
	// key. Expenses keep insertion order. Records are synthesized lazily the
	// first time a month is selected.
	MonthlyRecord struct {
		Month       string    `json:"month"` // YYYY-MM
		Salary      float64   `json:"salary"`
		ExtraIncome float64   `json:"extraIncome"`
		Expenses    []Expense `json:"expenses"`
	}

	// FinanceData is the aggregate root and the unit of persistence. The
	// whole structure is serialized as one blob after every mutation.
	FinanceData struct {
		Cards        []CreditCard             `json:"cards"`
		Categories   []Category               `json:"categories"`
		MonthlyData  map[string]MonthlyRecord `json:"monthlyData"`
		SavingsGoals []SavingsGoal            `json:"savingsGoals"`
	}
)

// AvailableLimit returns the remaining credit on the card. May be negative
// since UsedLimit is not capped at TotalLimit.
func (c CreditCard) AvailableLimit() float64 {
	return c.TotalLimit - c.UsedLimit
}

// DefaultCategories returns a fresh copy of the seeded category set. These
// ids are fixed and referenced by expenses; the entries are present in every
// newly initialized FinanceData and can never be deleted.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Icon: "UtensilsCrossed", Color: "hsl(38 92% 50%)"},
		{ID: "transport", Name: "Transport", Icon: "Car", Color: "hsl(210 100% 52%)"},
		{ID: "entertainment", Name: "Entertainment", Icon: "Gamepad2", Color: "hsl(280 65% 60%)"},
		{ID: "health", Name: "Health", Icon: "Heart", Color: "hsl(0 72% 51%)"},
		{ID: "education", Name: "Education", Icon: "GraduationCap", Color: "hsl(160 84% 39%)"},
		{ID: "housing", Name: "Housing", Icon: "Home", Color: "hsl(185 75% 45%)"},
		{ID: "shopping", Name: "Shopping", Icon: "ShoppingBag", Color: "hsl(320 70% 55%)"},
		{ID: "bills", Name: "Bills", Icon: "Receipt", Color: "hsl(200 80% 50%)"},
		{ID: "other", Name: "Other", Icon: "MoreHorizontal", Color: "hsl(215 15% 45%)"},
	}
}

// CardColors lists the palette offered for new cards.
var CardColors = []string{
	"hsl(160 84% 39%)",
	"hsl(210 100% 52%)",
	"hsl(185 75% 45%)",
	"hsl(38 92% 50%)",
	"hsl(280 65% 60%)",
	"hsl(0 72% 51%)",
	"hsl(320 70% 55%)",
	"hsl(200 80% 50%)",
}

// NewFinanceData returns an empty aggregate with the seeded categories.
func NewFinanceData() *FinanceData {
	return &FinanceData{
		Cards:        []CreditCard{},
		Categories:   DefaultCategories(),
		MonthlyData:  map[string]MonthlyRecord{},
		SavingsGoals: []SavingsGoal{},
	}
}

// EnsureMonth returns the record for the given month key, synthesizing an
// empty one if the month has never been touched. The second return reports
// whether a record was created.
func (d *FinanceData) EnsureMonth(month string) (MonthlyRecord, bool) {
	if d.MonthlyData == nil {
		d.MonthlyData = map[string]MonthlyRecord{}
	}
	if rec, ok := d.MonthlyData[month]; ok {
		return rec, false
	}
	rec := MonthlyRecord{Month: month, Expenses: []Expense{}}
	d.MonthlyData[month] = rec
	return rec, true
}

// Clone returns a deep copy of the record, safe to hand to readers.
func (r MonthlyRecord) Clone() MonthlyRecord {
	out := r
	out.Expenses = append([]Expense(nil), r.Expenses...)
	return out
}

// Clone returns a deep copy of the whole aggregate.
func (d *FinanceData) Clone() *FinanceData {
	out := &FinanceData{
		Cards:        append([]CreditCard(nil), d.Cards...),
		Categories:   append([]Category(nil), d.Categories...),
		MonthlyData:  make(map[string]MonthlyRecord, len(d.MonthlyData)),
		SavingsGoals: append([]SavingsGoal(nil), d.SavingsGoals...),
	}
	for k, rec := range d.MonthlyData {
		out.MonthlyData[k] = rec.Clone()
	}
	return out
}
