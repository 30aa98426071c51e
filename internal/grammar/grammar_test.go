package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_GBNF(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		want    string
	}{
		{
			name:    "word grammar",
			grammar: Word,
			want: `root ::= "{" ws "\"result\"" ws ":" ws "\"" [a-zA-Z]+ "\"" ws "}"
ws ::= [ \t\n]*
`,
		},
		{
			name:    "emoji grammar",
			grammar: Emoji,
			want: `root ::= "{" ws "\"emoji\"" ws ":" ws "\"" . "\"" ws "}"
ws ::= [ \t\n]*
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.grammar.GBNF())
		})
	}
}

func TestGrammar_JSONSchema(t *testing.T) {
	schema := Word.JSONSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"result"}, schema["required"])
	assert.Equal(t, false, schema["additionalProperties"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	field, ok := properties["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", field["type"])
}

func TestGrammar_Conforms(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		text    string
		wantErr error
	}{
		{
			name:    "word object",
			grammar: Word,
			text:    `{"result": "Steam"}`,
		},
		{
			name:    "surrounding whitespace",
			grammar: Emoji,
			text:    "\n {\"emoji\":\"💨\"} \n",
		},
		{
			name:    "not json",
			grammar: Word,
			text:    "Steam",
			wantErr: ErrNotObject,
		},
		{
			name:    "truncated json",
			grammar: Word,
			text:    `{"result": "Ste`,
			wantErr: ErrNotObject,
		},
		{
			name:    "json array",
			grammar: Word,
			text:    `["Steam"]`,
			wantErr: ErrNotObject,
		},
		{
			name:    "wrong field",
			grammar: Word,
			text:    `{"emoji": "💨"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "number value",
			grammar: Word,
			text:    `{"result": 42}`,
			wantErr: ErrNotString,
		},
		{
			name:    "empty value",
			grammar: Emoji,
			text:    `{"emoji": ""}`,
			wantErr: ErrEmptyValue,
		},
		{
			name:    "extra field",
			grammar: Word,
			text:    `{"result": "Steam", "reason": "hot water"}`,
			wantErr: ErrUnknownFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grammar.Conforms(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGrammar_Extract(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		text    string
		want    string
		wantErr bool
	}{
		{
			name:    "word",
			grammar: Word,
			text:    `{"result": "Steam"}`,
			want:    "Steam",
		},
		{
			name:    "extra fields are ignored",
			grammar: Word,
			text:    `{"result": "Mud", "confidence": 0.4}`,
			want:    "Mud",
		},
		{
			name:    "emoji",
			grammar: Emoji,
			text:    `{"emoji": "🌋"}`,
			want:    "🌋",
		},
		{
			name:    "empty response",
			grammar: Word,
			text:    "",
			wantErr: true,
		},
		{
			name:    "missing field",
			grammar: Emoji,
			text:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.grammar.Extract(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
