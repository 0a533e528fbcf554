// Package ollama implements the handler for the native Ollama chat API.
//
// Ollama streams newline-delimited JSON from /api/chat. Models that think
// report their reasoning in message.thinking, which is surfaced as
// reasoning events.
//
// # Local Usage (Default)
//
// For local Ollama instances, no API key is required:
//
//	h := ollama.New(ollama.WithModel("qwen3"))
//	resp, err := core.Collect(h.CreateMessage(ctx, "", msgs, nil))
//
// # Ollama Cloud
//
// For Ollama Cloud, set the base URL and an API key:
//
//	h := ollama.New(
//		ollama.WithBaseURL(ollama.DefaultCloudURL),
//		ollama.WithAPIKey(key),
//	)
//
// Unlike other backends, Ollama models are whatever the server has pulled;
// unknown model ids report core.DefaultModelInfo.
package ollama
