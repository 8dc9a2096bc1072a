package service

import "context"

type queryCall struct {
	method string
	query  string
	args   []interface{}
}

// mockQuerier records every statement and delegates to optional
// scripted responders.
type mockQuerier struct {
	calls []queryCall

	fetchFn    func(dest interface{}, query string, args []interface{}) error
	fetchRowFn func(dest interface{}, query string, args []interface{}) error
	fetchValFn func(dest interface{}, query string, args []interface{}) error
	execFn     func(query string, args []interface{}) (int64, error)
}

func (m *mockQuerier) Fetch(_ context.Context, dest interface{}, query string, args ...interface{}) error {
	m.calls = append(m.calls, queryCall{"Fetch", query, args})
	if m.fetchFn != nil {
		return m.fetchFn(dest, query, args)
	}
	return nil
}

func (m *mockQuerier) FetchRow(_ context.Context, dest interface{}, query string, args ...interface{}) error {
	m.calls = append(m.calls, queryCall{"FetchRow", query, args})
	if m.fetchRowFn != nil {
		return m.fetchRowFn(dest, query, args)
	}
	return nil
}

func (m *mockQuerier) FetchVal(_ context.Context, dest interface{}, query string, args ...interface{}) error {
	m.calls = append(m.calls, queryCall{"FetchVal", query, args})
	if m.fetchValFn != nil {
		return m.fetchValFn(dest, query, args)
	}
	return nil
}

func (m *mockQuerier) Exec(_ context.Context, query string, args ...interface{}) (int64, error) {
	m.calls = append(m.calls, queryCall{"Exec", query, args})
	if m.execFn != nil {
		return m.execFn(query, args)
	}
	return 1, nil
}

func (m *mockQuerier) lastCall() queryCall {
	return m.calls[len(m.calls)-1]
}
