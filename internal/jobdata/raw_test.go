package jobdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *RawJobData
		wantErr bool
	}{
		{
			name:  "object with skill list",
			input: `{"role":"Backend Engineer","skills":["Node.js","PostgreSQL"]}`,
			want:  &RawJobData{Role: "Backend Engineer", Skills: SkillsList("Node.js", "PostgreSQL")},
		},
		{
			name:  "skills as string",
			input: `{"role":"Dev","skills":"Go, SQL"}`,
			want:  &RawJobData{Role: "Dev", Skills: SkillsText("Go, SQL")},
		},
		{
			name:  "skills wrong type",
			input: `{"role":"Dev","skills":{"primary":"Go"}}`,
			want:  &RawJobData{Role: "Dev", Skills: RawSkills{Kind: SkillsOther}},
		},
		{
			name:  "skills null",
			input: `{"role":"Dev","skills":null}`,
			want:  &RawJobData{Role: "Dev"},
		},
		{
			name:  "mixed skill list keeps scalars",
			input: `{"skills":["Go", 3, null, {"x":1}, ""]}`,
			want:  &RawJobData{Skills: SkillsList("Go", "3")},
		},
		{
			name:  "numeric experience",
			input: `{"experience": 5}`,
			want:  &RawJobData{Experience: "5"},
		},
		{
			name:  "wrong-typed role is absent",
			input: `{"role": ["a"], "description": "d"}`,
			want:  &RawJobData{Description: "d"},
		},
		{
			name:  "array takes first element",
			input: `[{"role":"First"},{"role":"Second"}]`,
			want:  &RawJobData{Role: "First"},
		},
		{name: "empty array", input: `[]`},
		{name: "null", input: `null`},
		{name: "string", input: `"a job"`},
		{name: "empty", input: `   `},
		{name: "malformed", input: `{"role":`, wantErr: true},
		{name: "garbage", input: `here is the JSON you asked for`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Role, got.Role)
			assert.Equal(t, tt.want.Experience, got.Experience)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.Skills.Kind, got.Skills.Kind)
			assert.Equal(t, tt.want.Skills.Text, got.Skills.Text)
			assert.ElementsMatch(t, tt.want.Skills.List, got.Skills.List)
		})
	}
}
