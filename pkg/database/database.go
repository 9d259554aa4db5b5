package database

import (
	"fmt"
	"log"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ShouldMigrate decides whether startup runs AutoMigrate: always outside
// release mode, and in release only when forced from the command line.
func ShouldMigrate(mode string, force bool) bool {
	return force || mode != "release"
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Task{},
		&model.Course{},
		&model.CourseModule{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.ModuleProgress{},
		&model.CourseProgress{},
		&model.BlogPost{},
		&model.FAQ{},
		&model.JobOpening{},
		&model.ContactMessage{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the FAQ section on an empty database so the marketing page is not blank.
	var faqCount int64
	db.Model(&model.FAQ{}).Count(&faqCount)
	if faqCount == 0 {
		defaultFAQs := []model.FAQ{
			{Question: "Is StudyHub free to use?", Answer: "The planner (subjects and tasks) is free. Courses may be free or paid depending on the author.", Category: "general", Order: 1, Published: true},
			{Question: "How is my course progress calculated?", Answer: "Progress is the share of modules you have marked complete, rounded to the nearest percent.", Category: "courses", Order: 2, Published: true},
			{Question: "Can I retake a quiz?", Answer: "Yes. Every submission is stored as its own attempt; your history keeps all of them.", Category: "quizzes", Order: 3, Published: true},
			{Question: "What counts as passing a quiz?", Answer: "Your score has to meet or exceed the quiz's passing score. A score exactly equal to the threshold passes.", Category: "quizzes", Order: 4, Published: true},
		}
		for _, f := range defaultFAQs {
			db.Create(&f)
		}
	}

	return db, nil
}
