package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-s", "data/a.db"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-s", "data/a.db"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not taken as value",
			args:    []string{"-c", "--config=alt.json"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "--config=alt.json"},
		},
		{
			name:    "several allowed flags in order",
			args:    []string{"-s", "a.db", "-l", "debug", "-e", "argon2id", "--other", "x"},
			allowed: []string{"-s", "-l", "-e"},
			want:    []string{"-s", "a.db", "-l", "debug", "-e", "argon2id"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "/path/short.json", JsonConfigFlags([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", JsonConfigFlags([]string{"-config", "/path/long.json"}))
	assert.Equal(t, "/path/eq.json", JsonConfigFlags([]string{"--config=/path/eq.json"}))
	assert.Empty(t, JsonConfigFlags([]string{"-s", "a.db", "-l", "debug"}))
	assert.Equal(t, "/path/2.json", JsonConfigFlags([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
}
