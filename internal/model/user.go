// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and types shared across the
// application: section taxonomy, static fallback content, image rules,
// message statuses and the typed settings view.
package model

// RoleAdmin is the administrator user role. The app has a single role;
// the column exists so more can be added without a migration.
const RoleAdmin = "admin"
