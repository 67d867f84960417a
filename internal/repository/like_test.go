package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"pine ridge":  "pine ridge",
		"100%":        `100\%`,
		"under_score": `under\_score`,
		`back\slash`:  `back\\slash`,
		`%_\`:         `\%\_\\`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDuplicateKeyError(t *testing.T) {
	if err := duplicateKeyError(errTest("Error 1062: Duplicate entry 'bob' for key 'users.uq_users_username'")); err != ErrUsernameExists {
		t.Fatalf("username dup mapped to %v", err)
	}
	if err := duplicateKeyError(errTest("Error 1062: Duplicate entry 'b@c.d' for key 'users.uq_users_email'")); err != ErrEmailExists {
		t.Fatalf("email dup mapped to %v", err)
	}
	if err := duplicateKeyError(errTest("Error 1146: Table 'camp.users' doesn't exist")); err != nil {
		t.Fatalf("non-duplicate mapped to %v", err)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
