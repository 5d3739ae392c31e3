package model_test

import (
	"testing"

	"dms-web-server/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestWorkspace_ResolveRole(t *testing.T) {
	workspace := &model.Workspace{
		UserID:    "owner-1",
		UserEmail: "owner@example.com",
		Permissions: []model.WorkspacePermission{
			{UserEmail: "editor@example.com", Permission: model.RoleEditor},
			{UserEmail: "viewer@example.com", Permission: model.RoleViewer},
		},
	}

	tests := []struct {
		name   string
		userID string
		email  string
		expect string
	}{
		{"owner by id", "owner-1", "other@example.com", model.RoleOwner},
		{"owner by email", "someone-else", "owner@example.com", model.RoleOwner},
		{"editor grant", "user-2", "editor@example.com", model.RoleEditor},
		{"viewer grant", "user-3", "viewer@example.com", model.RoleViewer},
		{"stranger", "user-4", "stranger@example.com", model.RoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, workspace.ResolveRole(tt.userID, tt.email))
		})
	}
}

func TestWorkspace_HasGrant(t *testing.T) {
	workspace := &model.Workspace{
		Permissions: []model.WorkspacePermission{
			{UserEmail: "editor@example.com", Permission: model.RoleEditor},
		},
	}

	assert.True(t, workspace.HasGrant("editor@example.com"))
	assert.False(t, workspace.HasGrant("stranger@example.com"))
}
