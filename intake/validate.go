// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/phasecheck/models"
)

// MinTimeElapsed is the fastest plausible completion time in seconds.
const MinTimeElapsed = 5.0

// legacyCommentKey carried the q5 free text before q5 became an object.
const legacyCommentKey = "q5_text"

var ErrNotArray = errors.New("batch must be a JSON array")

// Batch partitions a batch into accepted submissions and rejections.
// len(Accepted) + len(Rejected) always equals the batch size.
type Batch struct {
	Accepted []models.Submission
	Rejected []models.Rejection
}

// record is a raw submission decoded for validation. Field order is the
// order reasons are reported in.
type record struct {
	TimeElapsed *float64       `json:"time_elapsed" validate:"required,gte=5"`
	UserID      string         `json:"user_id" validate:"required"`
	Timestamp   string         `json:"timestamp" validate:"required,timestamp"`
	Responses   map[string]any `json:"responses" validate:"min=1,core"`
	Answers     answerFields   `json:"-"`
}

// answerFields holds the answers as decoded. Numeric answers stay float64
// so range checks never overflow; a present value that is not a number is
// NaN and fails the whole check.
type answerFields struct {
	Q1 *float64         `json:"q1" validate:"omitnil,whole,min=0,max=4"`
	Q2 *float64         `json:"q2" validate:"omitnil,whole,min=0,max=4"`
	Q3 *float64         `json:"q3" validate:"omitnil,whole,min=1,max=5"`
	Q4 *float64         `json:"q4" validate:"omitnil,whole,min=1,max=5"`
	Q6 *float64         `json:"q6" validate:"omitnil,whole,min=1,max=5"`
	Q5 *models.Symptoms `json:"q5"`
}

type intQuestion struct {
	key    string
	min    int
	max    int
	field  func(f *answerFields) **float64
	assign func(a *models.AnswerSet, v int)
}

var intQuestions = []intQuestion{
	{models.KeyBleeding, 0, 4, func(f *answerFields) **float64 { return &f.Q1 }, func(a *models.AnswerSet, v int) { a.Bleeding = &v }},
	{models.KeyMucus, 0, 4, func(f *answerFields) **float64 { return &f.Q2 }, func(a *models.AnswerSet, v int) { a.Mucus = &v }},
	{models.KeyLibido, 1, 5, func(f *answerFields) **float64 { return &f.Q3 }, func(a *models.AnswerSet, v int) { a.Libido = &v }},
	{models.KeyMood, 1, 5, func(f *answerFields) **float64 { return &f.Q4 }, func(a *models.AnswerSet, v int) { a.Mood = &v }},
	{models.KeyEnergy, 1, 5, func(f *answerFields) **float64 { return &f.Q6 }, func(a *models.AnswerSet, v int) { a.Energy = &v }},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"whole":     isWholeNumber,
		"timestamp": isTimestamp,
		"core":      hasCoreQuestions,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	v.RegisterStructValidation(validateSymptoms, answerFields{})
	return v
}

// DecodeBatch splits a JSON array into raw records. Elements are decoded
// independently: an element that is not an object becomes a nil record
// instead of failing the whole batch.
func DecodeBatch(data []byte) ([]models.RawSubmission, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}

	records := make([]models.RawSubmission, len(elems))
	for i, elem := range elems {
		var m map[string]any
		if err := json.Unmarshal(elem, &m); err != nil {
			continue
		}
		records[i] = m
	}
	return records, nil
}

// ValidateBatch validates every record. A bad record never stops the batch.
func ValidateBatch(records []models.RawSubmission) Batch {
	var b Batch
	for i, raw := range records {
		sub, reasons := Validate(raw)
		if len(reasons) > 0 {
			b.Rejected = append(b.Rejected, models.Rejection{
				Index:   i,
				UserID:  sub.UserID,
				Reasons: reasons,
			})
			continue
		}
		b.Accepted = append(b.Accepted, sub)
	}
	return b
}

// Validate checks one record and returns the normalized submission.
// Every failing check contributes a reason; the submission is only
// usable when no reasons are returned.
func Validate(raw models.RawSubmission) (models.Submission, []string) {
	if raw == nil {
		return models.Submission{}, []string{"Record is not a JSON object."}
	}

	rec := record{
		UserID:    trimmedString(raw["user_id"]),
		Timestamp: trimmedString(raw["timestamp"]),
		Responses: LowerKeys(raw["responses"]),
	}
	if elapsed, ok := number(raw["time_elapsed"]); ok {
		rec.TimeElapsed = &elapsed
	}
	rec.Answers = decodeAnswers(rec.Responses)

	sub := models.Submission{UserID: rec.UserID, Timestamp: rec.Timestamp}
	if rec.TimeElapsed != nil {
		sub.TimeElapsed = *rec.TimeElapsed
	}

	failed, reasons := check(rec, raw, rec.Responses)
	if !failed["timestamp"] {
		sub.SubmittedAt, _ = ParseTimestamp(rec.Timestamp)
	}
	sub.Answers = rec.Answers.answerSet(failed)

	return sub, reasons
}

// NormalizeAnswers converts lower-cased responses into an AnswerSet.
// Absent answers stay nil; present answers that are not whole numbers in
// range, or an empty q5, produce reasons.
func NormalizeAnswers(responses map[string]any) (models.AnswerSet, []string) {
	fields := decodeAnswers(responses)
	failed, reasons := check(fields, nil, responses)
	return fields.answerSet(failed), reasons
}

func decodeAnswers(responses map[string]any) answerFields {
	var f answerFields
	for _, q := range intQuestions {
		v, present := responses[q.key]
		if !present {
			continue
		}
		n, ok := number(v)
		if !ok {
			n = math.NaN()
		}
		*q.field(&f) = &n
	}
	if v, present := responses[models.KeySymptoms]; present {
		s := symptoms(v, responses[legacyCommentKey])
		f.Q5 = &s
	}
	return f
}

// answerSet keeps the answers that passed validation.
func (f answerFields) answerSet(failed map[string]bool) models.AnswerSet {
	var a models.AnswerSet
	for _, q := range intQuestions {
		p := *q.field(&f)
		if p == nil || failed[q.key] {
			continue
		}
		q.assign(&a, int(*p))
	}
	if f.Q5 != nil {
		a.Symptoms = *f.Q5
	}
	return a
}

// check runs the validator over s and turns each field error into a
// reason. raw and responses supply the values as submitted.
func check(s any, raw models.RawSubmission, responses map[string]any) (map[string]bool, []string) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, []string{err.Error()}
	}

	failed := make(map[string]bool, len(verrs))
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = true
		reasons = append(reasons, reason(fe, raw, responses))
	}
	return failed, reasons
}

func reason(fe validator.FieldError, raw models.RawSubmission, responses map[string]any) string {
	switch fe.Field() {
	case "time_elapsed":
		return fmt.Sprintf("Invalid time_elapsed=%v (must be >= %g).", raw["time_elapsed"], MinTimeElapsed)
	case "user_id":
		return "Missing user_id."
	case "timestamp":
		if fe.Tag() == "required" {
			return "Missing timestamp."
		}
		return fmt.Sprintf("Invalid timestamp format=%v (expected MMDDYYHHMMSS).", fe.Value())
	case "responses":
		if fe.Tag() == "min" {
			return "Responses object is empty."
		}
		return fmt.Sprintf("Missing one or more core questions (q1-q6): %s.", strings.Join(missingKeys(responses), ", "))
	case models.KeySymptoms:
		return "Q5 is empty: No symptoms or additional comments provided."
	}

	for _, q := range intQuestions {
		if q.key != fe.Field() {
			continue
		}
		label := strings.ToUpper(q.key)
		if fe.Tag() == "whole" {
			return fmt.Sprintf("%s=%v is not a whole number.", label, responses[q.key])
		}
		return fmt.Sprintf("%s=%v out of range (%d-%d).", label, responses[q.key], q.min, q.max)
	}
	return fmt.Sprintf("%s failed %s.", fe.Field(), fe.Tag())
}

func isWholeNumber(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func isTimestamp(fl validator.FieldLevel) bool {
	_, err := ParseTimestamp(fl.Field().String())
	return err == nil
}

func hasCoreQuestions(fl validator.FieldLevel) bool {
	m, _ := fl.Field().Interface().(map[string]any)
	return len(missingKeys(m)) == 0
}

// validateSymptoms rejects a q5 that was answered with nothing in it.
func validateSymptoms(sl validator.StructLevel) {
	f := sl.Current().Interface().(answerFields)
	if f.Q5 != nil && f.Q5.Empty() {
		sl.ReportError(f.Q5, models.KeySymptoms, "Q5", "nonempty", "")
	}
}

// LowerKeys returns v as a map with lower-cased keys. Anything that is not
// an object yields nil. Keys are visited in sorted order so collisions
// ("Q1" and "q1") resolve the same way every time.
func LowerKeys(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		out[strings.ToLower(strings.TrimSpace(k))] = m[k]
	}
	return out
}

// symptoms accepts the structured {symptoms, additional} shape as well as
// the legacy flat list, whose comment lived under q5_text.
func symptoms(v any, legacyComment any) models.Symptoms {
	var s models.Symptoms
	switch t := v.(type) {
	case map[string]any:
		fields := LowerKeys(t)
		s.List = stringList(fields["symptoms"])
		s.Additional = trimmedString(fields["additional"])
	case []any:
		s.List = stringList(t)
	case string:
		s.Additional = strings.TrimSpace(t)
	}
	if s.Additional == "" {
		s.Additional = trimmedString(legacyComment)
	}
	return s
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s := trimmedString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		var out []string
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

func missingKeys(responses map[string]any) []string {
	var missing []string
	for _, k := range models.RequiredKeys {
		if _, ok := responses[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// number accepts the numeric types a decoded JSON document or a Go caller
// may hand us. Booleans and numeric strings are not numbers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
