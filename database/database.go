package database

import (
	"fmt"
	"log"

	config "github.com/examchat/backend/configs"
	"github.com/examchat/backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Exam{},
		&models.Question{},
		&models.Option{},
		&models.UserAnswer{},
		&models.Message{},
		&models.Group{},
		&models.GroupUser{},
		&models.GroupMessage{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// Seed loads the demo data set: three users, the sample exam with its
// questions and options, and an opening exchange of messages. It is a no-op
// once the exam exists.
func Seed() {
	var count int64
	if err := DB.Model(&models.Exam{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for seed data: %v", err)
	}
	if count > 0 {
		log.Println("Seed data already present.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{Name: "Md. Mostafijur Rahman", Email: "mostafijur@gmail.com", Password: string(hashed)},
		{Name: "Blaine Keller", Email: "user@gmail.com", Password: string(hashed)},
		{Name: "Blaine Keller", Email: "executive@gmail.com", Password: string(hashed)},
	}
	if err := DB.Create(&users).Error; err != nil {
		log.Fatalf("🔥 Failed to seed users: %v", err)
	}

	exam := models.Exam{
		Name: "General Knowledge",
		Questions: []models.Question{
			{
				QuestionText:  "What is the capital of France?",
				Type:          models.QuestionTypeMCQ,
				CorrectAnswer: "Paris",
				Options: []models.Option{
					{OptionText: "Berlin"},
					{OptionText: "Madrid"},
					{OptionText: "Paris"},
					{OptionText: "Rome"},
				},
			},
			{
				QuestionText:  "What is 2 + 2?",
				Type:          models.QuestionTypeMCQ,
				CorrectAnswer: "4",
				Options: []models.Option{
					{OptionText: "3"},
					{OptionText: "4"},
					{OptionText: "5"},
					{OptionText: "6"},
				},
			},
			{
				QuestionText:  `Name a programming language that starts with "P".`,
				Type:          models.QuestionTypeText,
				CorrectAnswer: "PHP",
			},
		},
	}
	if err := DB.Create(&exam).Error; err != nil {
		log.Fatalf("🔥 Failed to seed exam: %v", err)
	}

	messages := []models.Message{
		{SenderID: users[0].ID, ReceiverID: users[1].ID, Message: "Hey! How are you doing?"},
		{SenderID: users[1].ID, ReceiverID: users[0].ID, Message: "I am good! What about you?"},
	}
	if err := DB.Create(&messages).Error; err != nil {
		log.Fatalf("🔥 Failed to seed messages: %v", err)
	}

	log.Println("✅ Demo data seeded successfully")
}
