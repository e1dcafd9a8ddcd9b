package console

import (
	"fmt"
	"strings"
	"time"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/services"
)

// FieldSeparator splits one input line into positional fields.
const FieldSeparator = "/"

// SplitFields splits line on FieldSeparator and trims every field.
func SplitFields(line string) []string {
	fields := strings.Split(line, FieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func wantFields(what string, fields []string, n int) error {
	if len(fields) != n {
		return fmt.Errorf("%w: %s takes %d fields, got %d", convert.ErrInvalidInput, what, n, len(fields))
	}
	return nil
}

func requiredName(fields []string) (string, error) {
	if fields[0] == "" || convert.IsSkip(fields[0]) {
		return "", fmt.Errorf("%w: name is required", convert.ErrInvalidInput)
	}
	return fields[0], nil
}

func optionalIDs(field string) []string {
	if convert.IsSkip(field) {
		return nil
	}
	ids := convert.SplitIDs(field)
	if ids == nil {
		return []string{}
	}
	return ids
}

func optionalDate(field string) (*time.Time, error) {
	if convert.IsSkip(field) {
		return nil, nil
	}
	d, err := convert.ParseDate(field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalString(field string) *string {
	if convert.IsSkip(field) {
		return nil
	}
	return &field
}

// ParseTaskCreate reads name/type/assignees/due.
func ParseTaskCreate(fields []string) (services.TaskCreate, error) {
	var in services.TaskCreate
	if err := wantFields("task create", fields, 4); err != nil {
		return in, err
	}
	name, err := requiredName(fields)
	if err != nil {
		return in, err
	}
	typ, err := convert.ParseTaskType(fields[1])
	if err != nil {
		return in, err
	}
	due, err := optionalDate(fields[3])
	if err != nil {
		return in, err
	}
	return services.TaskCreate{
		Name:        name,
		Type:        typ,
		AssigneeIDs: optionalIDs(fields[2]),
		DueTo:       due,
	}, nil
}

// ParseTaskUpdate reads tid/name/status/assignees/due.
func ParseTaskUpdate(fields []string) (string, services.TaskUpdate, error) {
	var in services.TaskUpdate
	if err := wantFields("task update", fields, 5); err != nil {
		return "", in, err
	}
	tid := fields[0]
	in.Name = optionalString(fields[1])
	if !convert.IsSkip(fields[2]) {
		status, err := convert.ParseStatus(fields[2])
		if err != nil {
			return "", in, err
		}
		in.Status = &status
	}
	in.AssigneeIDs = optionalIDs(fields[3])
	due, err := optionalDate(fields[4])
	if err != nil {
		return "", in, err
	}
	in.DueTo = due
	return tid, in, nil
}

// ParseMemberCreate reads name/authority.
func ParseMemberCreate(fields []string) (services.MemberCreate, error) {
	var in services.MemberCreate
	if err := wantFields("member create", fields, 2); err != nil {
		return in, err
	}
	name, err := requiredName(fields)
	if err != nil {
		return in, err
	}
	auth, err := convert.ParseAuthority(fields[1])
	if err != nil {
		return in, err
	}
	return services.MemberCreate{Name: name, Auth: auth}, nil
}

// ParseMemberUpdate reads mid/name/authority/tasks.
func ParseMemberUpdate(fields []string) (string, services.MemberUpdate, error) {
	var in services.MemberUpdate
	if err := wantFields("member update", fields, 4); err != nil {
		return "", in, err
	}
	mid := fields[0]
	in.Name = optionalString(fields[1])
	if !convert.IsSkip(fields[2]) {
		auth, err := convert.ParseAuthority(fields[2])
		if err != nil {
			return "", in, err
		}
		in.Auth = &auth
	}
	in.TaskIDs = optionalIDs(fields[3])
	return mid, in, nil
}

// ParseTaskCriteria reads "kind,value" tokens. Kinds are passed through as
// given so the task service can skip the ones it does not know.
func ParseTaskCriteria(tokens []string) ([]services.TaskCriterion, error) {
	criteria := make([]services.TaskCriterion, 0, len(tokens))
	for _, tok := range tokens {
		kind, value, ok := strings.Cut(strings.TrimSpace(tok), ",")
		if !ok || kind == "" || value == "" {
			return nil, fmt.Errorf("%w: criterion %q, want kind,value", convert.ErrInvalidInput, tok)
		}
		criteria = append(criteria, services.TaskCriterion{
			Kind:  services.CriterionKind(strings.TrimSpace(kind)),
			Value: strings.TrimSpace(value),
		})
	}
	return criteria, nil
}

// ParseMemberSelectors reads selector codes, space or comma separated.
func ParseMemberSelectors(tokens []string) []services.MemberSelector {
	var selectors []services.MemberSelector
	for _, tok := range tokens {
		for _, code := range convert.SplitIDs(tok) {
			selectors = append(selectors, services.MemberSelector(code))
		}
	}
	return selectors
}
