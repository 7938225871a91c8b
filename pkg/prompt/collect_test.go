package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htfield/pkg/formspec"
	"github.com/goliatone/go-htfield/pkg/param"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	messages     []string
	inputPos     int
	passPos      int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

const accountYAML = `
fields:
  - name: account[email]
    label: Email
    filters:
      - required: Provide an email
  - name: account[password]
    type: password
  - name: account[plan]
    label: Plan
    options:
      - {value: free, label: Free}
      - {value: pro, label: Pro}
  - name: account[bio]
    multiline: true
  - name: terms
    type: checkbox
    label: Accept terms
    filters:
      - required: You must accept
  - name: _csrf
    type: hidden
`

func buildForm(t *testing.T, raw string) *formspec.Form {
	t.Helper()
	doc, err := formspec.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := doc.Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestCollect_AllWidgetKinds(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "me@example.com"},
		passwords: []string{"hunter2"},
		selectIdx: []int{1},
		textAreas: []string{"hello"},
		confirm:   []bool{false, true},
	}
	form := buildForm(t, accountYAML)

	answers, err := Collect(context.Background(), driver, form)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := param.Context{
		"account": map[string]any{
			"email":    "me@example.com",
			"password": "hunter2",
			"plan":     "pro",
			"bio":      "hello",
		},
		"terms": "1",
	}
	if diff := cmp.Diff(want, answers); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Invalid account[email]: Provide an email",
		"Invalid terms: You must accept",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if driver.messages[0] != "Email" || driver.messages[2] != "account[password]" {
		t.Fatalf("unexpected prompt messages %v", driver.messages)
	}

	form.BindContext(answers)
	if errs := form.Validate(); errs != nil {
		t.Fatalf("collected answers should validate, got %v", errs)
	}
}

func TestCollect_GivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "", "", "", ""}}
	form := buildForm(t, "fields:\n  - name: a\n    filters: [required]\n")

	_, err := Collect(context.Background(), driver, form)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if len(driver.infoMessages) != MaxAttempts {
		t.Fatalf("expected %d info messages, got %d", MaxAttempts, len(driver.infoMessages))
	}
}

func TestCollect_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	form := buildForm(t, "fields:\n  - name: a\n")

	if _, err := Collect(context.Background(), driver, form); err == nil {
		t.Fatalf("expected driver error")
	}
	if _, err := Collect(context.Background(), nil, form); err == nil {
		t.Fatalf("expected missing driver error")
	}
}

func TestIndexOf(t *testing.T) {
	if indexOf([]string{"a", "b"}, "b") != 1 || indexOf([]string{"a"}, "z") != -1 {
		t.Fatalf("indexOf mismatch")
	}
}
