package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      Credentials
		wantErr string
	}{
		{"valid login", Credentials{Email: "ada@example.com", Password: "secret1"}, ""},
		{"missing email", Credentials{Password: "secret1"}, "Email is required"},
		{"bad email", Credentials{Email: "ada", Password: "secret1"}, "Email must be a valid email address"},
		{"short password", Credentials{Email: "ada@example.com", Password: "123"}, "Password must be at least 6 characters"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Struct(tc.in)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()

	valid := Signup{Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	assert.NoError(t, Struct(valid))

	blank := valid
	blank.Name = "   "
	assert.EqualError(t, Struct(blank), "Name is required")

	short := valid
	short.Name = "A"
	assert.EqualError(t, Struct(short), "Name must be at least 2 characters")

	mismatch := valid
	mismatch.ConfirmPassword = "secret2"
	assert.EqualError(t, Struct(mismatch), "passwords do not match")
}

func TestProfileFields(t *testing.T) {
	t.Parallel()

	valid := ProfileFields{FirstName: "Ada", Email: "ada@example.com"}
	assert.NoError(t, Struct(valid))

	withAge := valid
	withAge.Age = "36"
	assert.NoError(t, Struct(withAge))

	badAge := valid
	badAge.Age = "abc"
	assert.EqualError(t, Struct(badAge), "Age must be a number between 1 and 150")

	zero := valid
	zero.Age = "0"
	assert.Error(t, Struct(zero))

	noName := valid
	noName.FirstName = ""
	assert.EqualError(t, Struct(noName), "First name is required")
}

func TestTaskTitle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Struct(TaskTitle{Title: "Write report"}))
	assert.EqualError(t, Struct(TaskTitle{Title: "  "}), "Title is required")
}

func TestField(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Field("Email", "ada@example.com", "required,email"))
	assert.EqualError(t, Field("Email", "nope", "required,email"), "Email must be a valid email address")
	assert.EqualError(t, Field("Password", "abc", "required,min=6"), "Password must be at least 6 characters")
}
