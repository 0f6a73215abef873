package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xamlport/dom"
)

func TestParseExtension(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *dom.MarkupExtension
	}{
		{
			name:  "name only",
			input: "{TemplateBinding}",
			want:  &dom.MarkupExtension{Name: "TemplateBinding"},
		},
		{
			name:  "single positional",
			input: "{StaticResource PrimaryBrush}",
			want: &dom.MarkupExtension{
				Name: "StaticResource",
				Args: []dom.ExtArg{{Text: "PrimaryBrush"}},
			},
		},
		{
			name:  "positional and named",
			input: "{Binding Title, Mode=TwoWay, ElementName=box}",
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{
					{Text: "Title"},
					{Name: "Mode", Text: "TwoWay"},
					{Name: "ElementName", Text: "box"},
				},
			},
		},
		{
			name:  "nested expression",
			input: "{Binding Path=Name, Converter={StaticResource conv}}",
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{
					{Name: "Path", Text: "Name"},
					{Name: "Converter", Ext: &dom.MarkupExtension{
						Name: "StaticResource",
						Args: []dom.ExtArg{{Text: "conv"}},
					}},
				},
			},
		},
		{
			name:  "deeply nested",
			input: "{Binding RelativeSource={RelativeSource Mode=FindAncestor, AncestorType={x:Type Window}}}",
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{
					{Name: "RelativeSource", Ext: &dom.MarkupExtension{
						Name: "RelativeSource",
						Args: []dom.ExtArg{
							{Name: "Mode", Text: "FindAncestor"},
							{Name: "AncestorType", Ext: &dom.MarkupExtension{
								Name: "x:Type",
								Args: []dom.ExtArg{{Text: "Window"}},
							}},
						},
					}},
				},
			},
		},
		{
			name:  "quoted value with separators",
			input: "{Binding Path=Name, StringFormat='Total: {0}, done'}",
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{
					{Name: "Path", Text: "Name"},
					{Name: "StringFormat", Text: "Total: {0}, done"},
				},
			},
		},
		{
			name:  "escaped quote",
			input: `{Binding StringFormat='it\'s'}`,
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{{Name: "StringFormat", Text: "it's"}},
			},
		},
		{
			name:  "whitespace tolerance",
			input: "{ Binding  Path = Name ,  Mode = OneWay }",
			want: &dom.MarkupExtension{
				Name: "Binding",
				Args: []dom.ExtArg{
					{Name: "Path", Text: "Name"},
					{Name: "Mode", Text: "OneWay"},
				},
			},
		},
		{
			name:  "nested positional argument",
			input: "{MultiBinding {Binding A}, {Binding B}}",
			want: &dom.MarkupExtension{
				Name: "MultiBinding",
				Args: []dom.ExtArg{
					{Ext: &dom.MarkupExtension{Name: "Binding", Args: []dom.ExtArg{{Text: "A"}}}},
					{Ext: &dom.MarkupExtension{Name: "Binding", Args: []dom.ExtArg{{Text: "B"}}}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtension(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExtensionErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "unterminated", input: "{Binding Title", wantErr: "unterminated"},
		{name: "missing name", input: "{, Path=X}", wantErr: "missing extension name"},
		{name: "trailing text", input: "{Binding} tail", wantErr: "after expression"},
		{name: "unterminated quote", input: "{Binding Path='abc}", wantErr: "unterminated quoted value"},
		{name: "brace inside bare value", input: "{Binding Path=a{b}", wantErr: "unexpected"},
		{name: "not an expression", input: "plain", wantErr: "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtension(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpressionPredicates(t *testing.T) {
	assert.True(t, IsExpression("{Binding}"))
	assert.False(t, IsExpression("plain"))
	assert.False(t, IsExpression("{}{literal}"))
	assert.True(t, IsEscaped("{}{literal}"))
	assert.Equal(t, "{literal}", Unescape("{}{literal}"))
}
