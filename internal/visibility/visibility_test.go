package visibility

import (
	"encoding/json"
	"reflect"
	"testing"

	"clientportal/internal/model"
	"clientportal/pkg/rbac"
)

func projectIDs(projects []model.Project) []string {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID.String()
	}
	return ids
}

func TestVisibleAdminSeesEverything(t *testing.T) {
	projects := []model.Project{
		{ID: "1"},
		{ID: "2", Users: []model.User{{ID: "9", Email: "other@x.com"}}},
	}
	admin := &model.User{ID: "1", Email: "admin@x.com", Role: rbac.RoleAdmin}

	got := Visible(projects, admin)
	if len(got) != 2 {
		t.Fatalf("admin visible: got %d projects, want 2", len(got))
	}
}

func TestVisibleStaffSeesEverything(t *testing.T) {
	projects := []model.Project{{ID: "1"}, {ID: "2"}}
	staff := &model.User{ID: "5", Role: rbac.RoleStaff}

	if got := Visible(projects, staff); len(got) != 2 {
		t.Fatalf("staff visible: got %d projects, want 2", len(got))
	}
}

func TestVisibleClientMatching(t *testing.T) {
	client := &model.User{ID: "7", Email: "a@x.com", Role: rbac.RoleClient}

	tests := []struct {
		name    string
		project model.Project
		want    bool
	}{
		{
			name:    "no assigned users excludes project",
			project: model.Project{ID: "1"},
			want:    false,
		},
		{
			name: "match by id only with mismatched email",
			project: model.Project{ID: "2", Users: []model.User{
				{ID: "7", Email: "different@x.com"},
			}},
			want: true,
		},
		{
			name: "match by email only with missing id",
			project: model.Project{ID: "3", Users: []model.User{
				{Email: "a@x.com"},
			}},
			want: true,
		},
		{
			name: "no match despite other metadata",
			project: model.Project{ID: "4", Client: "a@x.com", Users: []model.User{
				{ID: "99", Email: "b@x.com"},
			}},
			want: false,
		},
		{
			name: "email comparison is case sensitive",
			project: model.Project{ID: "5", Users: []model.User{
				{Email: "A@X.COM"},
			}},
			want: false,
		},
		{
			name: "match among several assignees",
			project: model.Project{ID: "6", Users: []model.User{
				{ID: "1", Email: "x@x.com"},
				{ID: "7", Email: "a@x.com"},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible([]model.Project{tt.project}, client)
			if (len(got) == 1) != tt.want {
				t.Errorf("visible: got %d, want included=%v", len(got), tt.want)
			}
		})
	}
}

func TestVisibleNumericIDCoercion(t *testing.T) {
	// Assignment payloads deliver ids as numbers; the current user's id is
	// a string. Both must coerce to the same value.
	raw := `{"id":"3","name":"PCB design","users":[{"id":7,"email":"a@x.com"}]}`
	var project model.Project
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	client := &model.User{ID: "7", Email: "other@x.com", Role: rbac.RoleClient}
	got := Visible([]model.Project{project}, client)
	if len(got) != 1 {
		t.Fatalf("numeric id assignment: project should be visible, got %d", len(got))
	}
}

func TestVisibleIsIdempotentAndOrderPreserving(t *testing.T) {
	client := &model.User{ID: "7", Email: "a@x.com", Role: rbac.RoleClient}
	projects := []model.Project{
		{ID: "c", Users: []model.User{{ID: "7"}}},
		{ID: "a", Users: []model.User{{ID: "8"}}},
		{ID: "b", Users: []model.User{{Email: "a@x.com"}}},
	}

	first := Visible(projects, client)
	second := Visible(first, client)

	if !reflect.DeepEqual(projectIDs(first), projectIDs(second)) {
		t.Errorf("not idempotent: first %v, second %v", projectIDs(first), projectIDs(second))
	}
	if want := []string{"c", "b"}; !reflect.DeepEqual(projectIDs(first), want) {
		t.Errorf("order: got %v, want %v", projectIDs(first), want)
	}
}

func TestVisibleNilUser(t *testing.T) {
	projects := []model.Project{{ID: "1"}}
	if got := Visible(projects, nil); got != nil {
		t.Errorf("nil user: got %v, want nil", got)
	}
}
