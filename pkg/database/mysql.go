package database

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lgs_prep_backend/internal/config"
	"lgs_prep_backend/internal/model"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.School{},
		&model.User{},
		&model.Subject{},
		&model.Unit{},
		&model.Topic{},
		&model.LearningOutcome{},
		&model.Question{},
		&model.ExamSession{},
		&model.SessionItem{},
		&model.Answer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedCurriculum(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedCurriculum inserts the six LGS subjects on an empty database so the
// full-simulation mode has a subject cycle to work with.
func seedCurriculum(db *gorm.DB) error {
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count > 0 {
		return nil
	}

	subjects := []model.Subject{
		{Code: "turkce", Name: "Türkçe", Order: 1},
		{Code: "matematik", Name: "Matematik", Order: 2},
		{Code: "fen", Name: "Fen Bilimleri", Order: 3},
		{Code: "inkilap", Name: "T.C. İnkılap Tarihi ve Atatürkçülük", Order: 4},
		{Code: "din", Name: "Din Kültürü ve Ahlak Bilgisi", Order: 5},
		{Code: "ingilizce", Name: "Yabancı Dil (İngilizce)", Order: 6},
	}
	for i := range subjects {
		if err := db.Create(&subjects[i]).Error; err != nil {
			return err
		}
	}

	// A starter unit/topic per subject; real curriculum content is
	// authored through the admin endpoints.
	starterTopics := map[string][]string{
		"turkce":    {"Sözcükte Anlam", "Paragraf"},
		"matematik": {"Çarpanlar ve Katlar", "Üslü İfadeler"},
		"fen":       {"Mevsimler ve İklim", "DNA ve Genetik Kod"},
		"inkilap":   {"Bir Kahraman Doğuyor"},
		"din":       {"Kader İnancı"},
		"ingilizce": {"Friendship"},
	}

	for i := range subjects {
		unit := model.Unit{SubjectID: subjects[i].ID, Name: subjects[i].Name + " 1. Ünite", Order: 1}
		if err := db.Create(&unit).Error; err != nil {
			return err
		}
		for j, topicName := range starterTopics[subjects[i].Code] {
			topic := model.Topic{
				UnitID:    unit.ID,
				SubjectID: subjects[i].ID,
				Name:      topicName,
				Order:     j + 1,
			}
			if err := db.Create(&topic).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Curriculum seed completed")
	return nil
}
