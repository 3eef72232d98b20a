package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchlist-cli/internal/model"
)

func TestFormValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fieldName   string
		description string
		want        bool
	}{
		{name: "both long enough", fieldName: "Task A", description: "desc one", want: true},
		{name: "name too short", fieldName: "Hi", description: "long enough", want: false},
		{name: "description too short", fieldName: "long enough", description: "ok", want: false},
		{name: "both too short", fieldName: "Hi", description: "ok", want: false},
		{name: "both empty", fieldName: "", description: "", want: false},
		{name: "exactly three", fieldName: "abc", description: "xyz", want: true},
		{name: "spaces count, no trimming", fieldName: "   ", description: "   ", want: true},
		{name: "multibyte runes count once each", fieldName: "héllo", description: "åäö", want: true},
		{name: "two runes", fieldName: "åä", description: "description", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewForm()
			f.Name = tt.fieldName
			f.Description = tt.description

			got := f.Validate()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, f.IsValid(), "IsValid must mirror the last Validate result")
		})
	}
}

func TestFormReset(t *testing.T) {
	t.Parallel()

	f := NewForm()
	f.Name = "something"
	f.Description = "something else"
	f.Priority = model.PriorityHigh
	f.BeginEdit(model.Item{ID: 7, Name: "target", Description: "desc", Priority: model.PriorityHigh})
	f.Validate()

	f.Reset()

	assert.Empty(t, f.Name)
	assert.Empty(t, f.Description)
	assert.Equal(t, model.PriorityLow, f.Priority)
	_, editing := f.EditTarget()
	assert.False(t, editing)
	assert.True(t, f.IsValid(), "a fresh form shows no validation message")
}

func TestFormBeginEdit(t *testing.T) {
	t.Parallel()

	it := model.Item{ID: 12, Name: "fix gate", Description: "hinge is loose", Priority: model.PriorityMedium}

	f := NewForm()
	f.BeginEdit(it)

	require.Equal(t, "fix gate", f.Name)
	require.Equal(t, "hinge is loose", f.Description)
	require.Equal(t, model.PriorityMedium, f.Priority)
	id, editing := f.EditTarget()
	require.True(t, editing)
	require.Equal(t, 12, id)
}

func TestNewFormDefaults(t *testing.T) {
	t.Parallel()

	f := NewForm()
	assert.Equal(t, model.PriorityLow, f.Priority)
	_, editing := f.EditTarget()
	assert.False(t, editing)
}
