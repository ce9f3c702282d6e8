package model

// Severity ranks how serious an issue or finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// IssueCategory is the taxonomy tag of an issue type.
type IssueCategory string

const (
	CategoryFraud          IssueCategory = "fraud"
	CategoryClassification IssueCategory = "classification"
	CategoryTiming         IssueCategory = "timing"
	CategoryDocumentation  IssueCategory = "documentation"
	CategoryCompliance     IssueCategory = "compliance"
)

// AccountingBasis selects cash or accrual bookkeeping.
type AccountingBasis string

const (
	BasisAccrual AccountingBasis = "accrual"
	BasisCash    AccountingBasis = "cash"
)

// Normalize maps unknown bases to accrual.
func (b AccountingBasis) Normalize() AccountingBasis {
	if b == BasisCash {
		return BasisCash
	}
	return BasisAccrual
}

// IssueKind tags the mutation strategy that plants an issue.
type IssueKind string

const (
	KindWrongAccount     IssueKind = "wrong_account"
	KindCutoff           IssueKind = "cutoff"
	KindPersonalExpense  IssueKind = "personal_expense"
	KindDuplicatePayment IssueKind = "duplicate_payment"
	KindRoundNumber      IssueKind = "round_number"
	KindStructuring      IssueKind = "structuring"
)

// IssueType is one entry of the issue catalog.
type IssueType struct {
	Kind          IssueKind       `json:"kind" yaml:"kind"`
	Category      IssueCategory   `json:"category" yaml:"category"`
	Name          string          `json:"name" yaml:"name"`
	Description   string          `json:"description" yaml:"description"`
	Severity      Severity        `json:"severity" yaml:"severity"`
	GAAPPrinciple string          `json:"gaap_principle" yaml:"gaap_principle"`
	Probability   float64         `json:"probability" yaml:"probability"`
	Basis         AccountingBasis `json:"basis,omitempty" yaml:"basis,omitempty"` // empty = any basis
}

// AppliesTo reports whether the issue type can be planted under basis b.
func (it IssueType) AppliesTo(b AccountingBasis) bool {
	return it.Basis == "" || it.Basis == b.Normalize()
}

// InjectedIssue records one planted issue and the entries it touched or created.
type InjectedIssue struct {
	IssueType       string        `json:"issue_type"`
	Category        IssueCategory `json:"category"`
	Severity        Severity      `json:"severity"`
	Description     string        `json:"description"`
	AffectedEntries []string      `json:"affected_entries"`
}

// AuditFinding is one anomaly reported by the detector.
type AuditFinding struct {
	FindingID            string   `json:"finding_id"`
	Category             string   `json:"category"`
	Severity             Severity `json:"severity"`
	Issue                string   `json:"issue"`
	Details              string   `json:"details"`
	AffectedTransactions []string `json:"affected_transactions"`
	Recommendation       string   `json:"recommendation"`
	Confidence           float64  `json:"confidence"`
}
