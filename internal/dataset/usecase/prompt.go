package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
)

const promptTemplate = "You are an expert data analyst. Given the dataset: %s, " +
	"analyse it for key insights, trends, patterns and anomalies. " +
	"Based on the user's query: %s, write a precise and well-structured answer. " +
	"Ground every claim in the data and use statistical reasoning where it helps. " +
	"State any assumption you make. Keep the explanation concise, easy to follow and actionable."

// buildPrompt embeds the whole dataset as JSON followed by the question.
func buildPrompt(rows []entity.Row, question string) (string, error) {
	if rows == nil {
		rows = []entity.Row{}
	}

	dataset, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}

	return fmt.Sprintf(promptTemplate, dataset, question), nil
}
