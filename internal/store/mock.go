package store

// MockReferenceStore is an in-memory stand-in for ReferenceStore used
// in tests.
type MockReferenceStore struct {
	CreditorAliases map[string]string
	References      map[string][]string

	LoadCreditorAliasesError error
	SaveCreditorAliasesError error
	LoadReferencesError      error

	Saved map[string]string
}

// LoadCreditorAliases returns the mock alias map.
func (m *MockReferenceStore) LoadCreditorAliases() (map[string]string, error) {
	if m.LoadCreditorAliasesError != nil {
		return nil, m.LoadCreditorAliasesError
	}
	result := make(map[string]string, len(m.CreditorAliases))
	for k, v := range m.CreditorAliases {
		result[k] = v
	}
	return result, nil
}

// SaveCreditorAliases records the saved map for assertions.
func (m *MockReferenceStore) SaveCreditorAliases(aliases map[string]string) error {
	if m.SaveCreditorAliasesError != nil {
		return m.SaveCreditorAliasesError
	}
	m.Saved = make(map[string]string, len(aliases))
	for k, v := range aliases {
		m.Saved[k] = v
	}
	return nil
}

// LoadReferences returns the mock citation map.
func (m *MockReferenceStore) LoadReferences() (map[string][]string, error) {
	if m.LoadReferencesError != nil {
		return nil, m.LoadReferencesError
	}
	result := make(map[string][]string, len(m.References))
	for k, v := range m.References {
		result[k] = append([]string(nil), v...)
	}
	return result, nil
}
