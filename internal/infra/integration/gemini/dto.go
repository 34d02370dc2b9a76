package gemini

// LeadAnalysis é a saída estruturada da análise de conversa.
type LeadAnalysis struct {
	Name     string `json:"name"`
	Interest string `json:"interest"`
	Urgency  string `json:"urgency"` // baixa, media, alta
	Score    int    `json:"score"`   // 0-100
	Summary  string `json:"summary"`
}

// Payloads da API generateContent do Gemini.

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type responseSchema struct {
	Type             string                    `json:"type"`
	Properties       map[string]schemaProperty `json:"properties,omitempty"`
	PropertyOrdering []string                  `json:"propertyOrdering,omitempty"`
}

type schemaProperty struct {
	Type string `json:"type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
