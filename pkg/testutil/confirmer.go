package testutil

import (
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// StubConfirmer answers every confirmation with a fixed response and
// records what it was asked
type StubConfirmer struct {
	Approve bool
	Asked   []ui.Confirmation
}

// Confirm records the confirmation and returns the scripted answer
func (s *StubConfirmer) Confirm(c ui.Confirmation) (bool, error) {
	s.Asked = append(s.Asked, c)
	return s.Approve, nil
}

// StubPrompter returns scripted group selections
type StubPrompter struct {
	Group  string
	Groups []string
}

func (s *StubPrompter) PickGroup(available []string, defaultGroup string) (string, error) {
	if s.Group != "" {
		return s.Group, nil
	}
	return defaultGroup, nil
}

func (s *StubPrompter) PickGroups(available, current []string) ([]string, error) {
	if s.Groups != nil {
		return s.Groups, nil
	}
	return current, nil
}

// Verify interface compliance
var (
	_ ui.Confirmer     = (*StubConfirmer)(nil)
	_ ui.GroupPrompter = (*StubPrompter)(nil)
)
