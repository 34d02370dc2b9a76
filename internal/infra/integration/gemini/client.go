package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// FallbackReply é a resposta estática usada quando o oráculo falha.
// Falha de IA nunca pode virar erro fatal na esteira.
const FallbackReply = "Estou analisando suas informações. Um momento, por favor."

const sdrSystemInstruction = "Seu objetivo é qualificar o lead extraindo Nome, Interesse e Urgência. " +
	"Se o lead estiver pronto, sugira um agendamento. Seja breve e sólido."

type Client struct {
	apiKey  string
	baseURL string
	model   string
}

func NewClient() *Client {
	return &Client{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   "gemini-3-flash-preview",
	}
}

// AnalyzeLeadConversation pede uma análise estruturada da conversa:
// nome, interesse, urgência, score e resumo executivo.
func (c *Client) AnalyzeLeadConversation(ctx context.Context, messages []string) (*LeadAnalysis, error) {
	if c.apiKey == "" {
		log.Println("⚠️ Gemini: GEMINI_API_KEY não configurada")
		return nil, fmt.Errorf("gemini não configurado")
	}

	prompt := fmt.Sprintf(`Analise a seguinte conversa de vendas e extraia informações estruturadas:
Conversa:
%s

Extraia:
1. Nome do Lead
2. Interesse principal
3. Urgência (Baixa, Média, Alta)
4. Lead Score (0-100)
5. Resumo Executivo (Máximo 2 parágrafos)`, strings.Join(messages, "\n"))

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &responseSchema{
				Type: "OBJECT",
				Properties: map[string]schemaProperty{
					"name":     {Type: "STRING"},
					"interest": {Type: "STRING"},
					"urgency":  {Type: "STRING"},
					"score":    {Type: "NUMBER"},
					"summary":  {Type: "STRING"},
				},
				PropertyOrdering: []string{"name", "interest", "urgency", "score", "summary"},
			},
		},
	}

	text, err := c.generate(ctx, reqBody)
	if err != nil {
		log.Printf("❌ Gemini: análise falhou: %v", err)
		return nil, err
	}

	var analysis LeadAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &analysis); err != nil {
		log.Printf("❌ Gemini: resposta fora do schema: %v", err)
		return nil, fmt.Errorf("resposta do gemini fora do schema: %w", err)
	}

	return &analysis, nil
}

// GenerateSDRResponse gera a próxima resposta do SDR. NUNCA retorna
// erro: qualquer falha degrada para o FallbackReply.
func (c *Client) GenerateSDRResponse(ctx context.Context, leadContext, lastUserMessage string) string {
	if c.apiKey == "" {
		log.Println("⚠️ Gemini: GEMINI_API_KEY não configurada, usando fallback")
		return FallbackReply
	}

	prompt := fmt.Sprintf(`Você é um SDR técnico da Atumia Core. Use um tom profissional, industrial e direto.
Contexto do Lead: %s
Última mensagem: %s`, leadContext, lastUserMessage)

	reqBody := generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: sdrSystemInstruction}}},
	}

	text, err := c.generate(ctx, reqBody)
	if err != nil {
		log.Printf("⚠️ Gemini: geração de resposta falhou, usando fallback: %v", err)
		return FallbackReply
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		return FallbackReply
	}
	return reply
}

func (c *Client) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %d - %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("gemini: %s (code: %d)", result.Error.Message, result.Error.Code)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: resposta sem candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
