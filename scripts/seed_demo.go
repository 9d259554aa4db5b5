// Seeds a demo dataset: one instructor, one student, a published course with
// modules and a quiz, and a few planner tasks.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"log"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	instructor := seedUser(db, "Ava Instructor", "instructor@studyhub.test", model.Instructor)
	student := seedUser(db, "Sam Student", "student@studyhub.test", model.Student)

	course := seedCourse(db, instructor.ID)
	seedQuiz(db, instructor.ID, course)
	seedPlanner(db, student.ID)

	log.Println("Demo data seeded")
}

func seedUser(db *gorm.DB, name, email string, role model.UserRole) *model.User {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		log.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func seedCourse(db *gorm.DB, authorID uint) *model.Course {
	slug := "intro-to-algorithms"
	var existing model.Course
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return &existing
	}

	course := &model.Course{
		Title:       "Intro to Algorithms",
		Slug:        slug,
		Description: "Big-O, sorting and searching from first principles.",
		Category:    "computer-science",
		Level:       model.LevelBeginner,
		AuthorID:    authorID,
		Published:   true,
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("failed to create course: %v", err)
	}

	modules := []model.CourseModule{
		{CourseID: course.ID, Title: "Why complexity matters", Order: 1, Content: "Counting steps, not seconds."},
		{CourseID: course.ID, Title: "Binary search", Order: 2, Content: "Halving the search space."},
		{CourseID: course.ID, Title: "Sorting basics", Order: 3, Content: "Insertion sort to merge sort."},
	}
	for i := range modules {
		if err := db.Create(&modules[i]).Error; err != nil {
			log.Fatalf("failed to create module: %v", err)
		}
	}
	return course
}

func seedQuiz(db *gorm.DB, authorID uint, course *model.Course) {
	var mod model.CourseModule
	if err := db.Where("course_id = ? AND `order` = ?", course.ID, 2).First(&mod).Error; err != nil {
		log.Fatalf("module lookup failed: %v", err)
	}

	var count int64
	db.Model(&model.Quiz{}).Where("module_id = ?", mod.ID).Count(&count)
	if count > 0 {
		return
	}

	quiz := &model.Quiz{
		Title:        "Binary search checkpoint",
		ModuleID:     &mod.ID,
		AuthorID:     authorID,
		PassingScore: 70,
		Published:    true,
	}
	if err := db.Create(quiz).Error; err != nil {
		log.Fatalf("failed to create quiz: %v", err)
	}

	questions := []model.Question{
		{
			QuizID:        quiz.ID,
			Text:          "What is the worst-case complexity of binary search?",
			OptionA:       "O(n)",
			OptionB:       "O(log n)",
			OptionC:       "O(n log n)",
			OptionD:       "O(1)",
			CorrectAnswer: model.OptionB,
			Points:        1,
			Order:         1,
		},
		{
			QuizID:        quiz.ID,
			Text:          "Binary search requires the input to be",
			OptionA:       "sorted",
			OptionB:       "unique",
			OptionC:       "numeric",
			OptionD:       "non-empty",
			CorrectAnswer: model.OptionA,
			Points:        2,
			Order:         2,
			Explanation:   "Order is the only precondition; duplicates and any comparable type are fine.",
		},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("failed to create question: %v", err)
		}
	}
}

func seedPlanner(db *gorm.DB, userID uint) {
	var count int64
	db.Model(&model.Subject{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return
	}

	subject := &model.Subject{UserID: userID, Name: "Algorithms", Color: "#0ea5e9", Order: 1}
	if err := db.Create(subject).Error; err != nil {
		log.Fatalf("failed to create subject: %v", err)
	}

	due := time.Now().Add(48 * time.Hour)
	tasks := []model.Task{
		{UserID: userID, SubjectID: &subject.ID, Title: "Watch the binary search module", Priority: model.PriorityHigh, DueDate: &due, EstimatedMinutes: 30},
		{UserID: userID, SubjectID: &subject.ID, Title: "Take the checkpoint quiz", Priority: model.PriorityMedium, EstimatedMinutes: 15},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatalf("failed to create task: %v", err)
		}
	}
}
