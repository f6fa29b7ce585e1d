// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Audit trail actions.
const (
	ChangeActionCreate       = "create"
	ChangeActionUpdate       = "update"
	ChangeActionDelete       = "delete"
	ChangeActionDeactivate   = "deactivate"
	ChangeActionStatusChange = "status_change"
	ChangeActionLogin        = "login"
	ChangeActionLogout       = "logout"
	ChangeActionSystem       = "system"
)

// Audited table names. TableSystem is used for entries that do not
// belong to a single row, such as log records and scheduler runs.
const (
	TableUsers           = "users"
	TableContactMessages = "contact_messages"
	TableCompanyContent  = "company_content"
	TableImages          = "images"
	TableSettings        = "settings"
	TablePublications    = "publications"
	TableSystem          = "system"
)
