package openai

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBuildParams(t *testing.T) {
	temp := 0.2
	h := New(WithModel("gpt-4.1"), WithMaxTokens(1024), WithTemperature(&temp), WithReasoningEffort("high"))

	params := h.buildParams("sys", []core.Message{
		{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("look"), core.Image("image/png", "AAAA")}},
		core.AssistantText("a cat"),
		core.UserText("thanks"),
	})
	data, err := json.Marshal(params)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", gjson.GetBytes(data, "model").String())
	assert.Equal(t, int64(1024), gjson.GetBytes(data, "max_tokens").Int())
	assert.InDelta(t, 0.2, gjson.GetBytes(data, "temperature").Float(), 1e-9)
	assert.Equal(t, "high", gjson.GetBytes(data, "reasoning_effort").String())

	msgs := gjson.GetBytes(data, "messages").Array()
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Get("role").String())
	assert.Equal(t, "text", msgs[1].Get("content.0.type").String())
	assert.Equal(t, "image_url", msgs[1].Get("content.1.type").String())
	assert.Equal(t, "data:image/png;base64,AAAA", msgs[1].Get("content.1.image_url.url").String())
	assert.Equal(t, "assistant", msgs[2].Get("role").String())
	assert.Equal(t, "a cat", msgs[2].Get("content").String())
	assert.Equal(t, "thanks", msgs[3].Get("content").String())
}

func TestBuildParamsOmitsUnsetFields(t *testing.T) {
	h := New(WithModel("m"))
	data, err := json.Marshal(h.buildParams("", []core.Message{core.UserText("hi")}))
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(data, "max_tokens").Exists())
	assert.False(t, gjson.GetBytes(data, "temperature").Exists())
	assert.False(t, gjson.GetBytes(data, "reasoning_effort").Exists())
	assert.Equal(t, "user", gjson.GetBytes(data, "messages.0.role").String())
}

func TestReasoningText(t *testing.T) {
	assert.Equal(t, "a", reasoningText(`{"reasoning_content":"a"}`))
	assert.Equal(t, "b", reasoningText(`{"reasoning":"b"}`))
	assert.Empty(t, reasoningText(`{"reasoning":null,"content":"x"}`))
	assert.Empty(t, reasoningText(""))
}

func TestUsageFromJSONDeepSeekCache(t *testing.T) {
	u := usageFromJSON(gjson.Parse(`{"prompt_tokens":100,"completion_tokens":20,"prompt_cache_hit_tokens":60,"prompt_cache_miss_tokens":40}`))
	assert.Equal(t, 100, u.InputTokens)
	assert.Equal(t, 20, u.OutputTokens)
	assert.Equal(t, 60, u.CacheReadTokens)
	assert.Nil(t, u.TotalCost)
}
