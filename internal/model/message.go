// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Contact message statuses. Messages toggle between the two and are
// never deleted.
const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

// IsValidMessageStatus checks if a status value is known.
func IsValidMessageStatus(status string) bool {
	return status == MessageStatusUnread || status == MessageStatusRead
}
