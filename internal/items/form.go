package items

import "punchlist-cli/internal/model"

// MinFieldLen is the minimum length for both name and description.
// Length is measured on the string exactly as typed: no trimming, so
// "   " (three spaces) passes while "hi" does not.
const MinFieldLen = 3

// Form holds the in-progress item for both the create and edit flows.
// It is transient state: never persisted, reset after a successful
// commit or an explicit cancel.
type Form struct {
	Name        string
	Description string
	Priority    model.Priority

	// editTargetID is nil in create mode and holds the target item id in
	// edit mode. Only BeginEdit sets it; Reset clears it.
	editTargetID *int

	// isValid records the outcome of the last Validate call. It drives a
	// user-facing validation message and never blocks further edits.
	isValid bool
}

func NewForm() Form {
	return Form{Priority: model.PriorityLow, isValid: true}
}

// Validate reports whether the form can be committed and records the
// result in the observable IsValid flag.
func (f *Form) Validate() bool {
	f.isValid = len([]rune(f.Name)) >= MinFieldLen && len([]rune(f.Description)) >= MinFieldLen
	return f.isValid
}

func (f *Form) IsValid() bool { return f.isValid }

// Reset returns the form to create-mode defaults.
func (f *Form) Reset() {
	*f = NewForm()
}

// BeginEdit pre-populates the form from an existing item and marks it as
// the edit target.
func (f *Form) BeginEdit(it model.Item) {
	id := it.ID
	f.Name = it.Name
	f.Description = it.Description
	f.Priority = it.Priority
	f.editTargetID = &id
	f.isValid = true
}

// EditTarget returns the id the form is editing, if any.
func (f *Form) EditTarget() (int, bool) {
	if f.editTargetID == nil {
		return 0, false
	}
	return *f.editTargetID, true
}
