// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ActivityAction is the kind of event recorded in the activity log.
type ActivityAction string

const (
	ActionViewed  ActivityAction = "viewed"
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionDeleted ActivityAction = "deleted"
)

// Activity is an entry of the per-user activity log.
type Activity struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	SubjectType string         `json:"subject_type"`
	SubjectID   int64          `json:"subject_id"`
	Action      ActivityAction `json:"action"`
	CreatedAt   time.Time      `json:"created_at"`
}
