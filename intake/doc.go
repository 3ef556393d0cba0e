// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package intake validates and normalizes raw questionnaire records.

# Batches

DecodeBatch turns a JSON array into raw records without failing on
individual elements, and ValidateBatch partitions them:

	records, err := intake.DecodeBatch(body)
	b := intake.ValidateBatch(records)
	// b.Accepted, b.Rejected

# Checks

Each record is checked in this order, and every failure is reported:

  - time_elapsed is a number of at least 5 seconds
  - user_id is a non-empty string
  - timestamp is present and parses as MMDDYYHHMMSS
  - responses is non-empty and contains q1 through q6 (keys are lower-cased)
  - q5 has at least one symptom or a comment
  - numeric answers are whole numbers in range

# Legacy q5

Older clients sent q5 as a plain list of symptoms with the comment under
q5_text. Both shapes normalize to the same Symptoms value.
*/
package intake
