// Bulk question import.
//
// Reads a JSON array of questions and inserts them into the item bank,
// running the same validation as the authoring endpoint. Meant for first
// deployments and for loading licensed question sets.
//
// Usage: go run scripts/import_questions.go -file questions.json
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"lgs_prep_backend/internal/config"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/repository"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/pkg/database"
	"lgs_prep_backend/pkg/logger"
)

type importedQuestion struct {
	SubjectID        uint              `json:"subjectId"`
	UnitID           uint              `json:"unitId"`
	TopicID          uint              `json:"topicId"`
	OutcomeID        uint              `json:"outcomeId"`
	Difficulty       string            `json:"difficulty"`
	Text             string            `json:"text"`
	Choices          map[string]string `json:"choices"`
	CorrectChoice    string            `json:"correctChoice"`
	Explanation      string            `json:"explanation"`
	EstimatedSeconds int               `json:"estimatedSeconds"`
}

func main() {
	file := flag.String("file", "questions.json", "path to the question JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var imported []importedQuestion
	if err := json.Unmarshal(data, &imported); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	storage := service.NewStorageService(cfg)
	questions := service.NewQuestionService(repository.NewQuestionRepository(db), storage)

	ok, failed := 0, 0
	for i, q := range imported {
		choices, err := json.Marshal(q.Choices)
		if err != nil {
			log.Printf("entry %d: bad choices: %v", i, err)
			failed++
			continue
		}

		question := &model.Question{
			SubjectID:        q.SubjectID,
			UnitID:           q.UnitID,
			TopicID:          q.TopicID,
			OutcomeID:        q.OutcomeID,
			Difficulty:       model.Difficulty(q.Difficulty),
			Text:             q.Text,
			Choices:          choices,
			CorrectChoice:    q.CorrectChoice,
			Explanation:      q.Explanation,
			EstimatedSeconds: q.EstimatedSeconds,
		}
		if err := questions.Create(question); err != nil {
			log.Printf("entry %d: %v", i, err)
			failed++
			continue
		}
		ok++
	}

	log.Printf("Imported %d questions, %d failed", ok, failed)
}
