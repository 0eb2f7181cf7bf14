package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/notifications"
)

// SendUnreadMessageReminders emails each user who has unread messages older
// than an hour. One digest per user per run.
func SendUnreadMessageReminders() {
	log.Println("Running job: SendUnreadMessageReminders...")

	cutoff := time.Now().Add(-1 * time.Hour)

	type unreadCount struct {
		ReceiverID uint
		Total      int64
	}
	var counts []unreadCount

	err := database.DB.Model(&models.Message{}).
		Select("receiver_id, count(*) as total").
		Where("is_read = ? AND created_at < ?", false, cutoff).
		Group("receiver_id").
		Scan(&counts).Error
	if err != nil {
		log.Printf("Error checking for unread messages: %v", err)
		return
	}

	if len(counts) == 0 {
		return
	}

	for _, c := range counts {
		var user models.User
		if err := database.DB.First(&user, c.ReceiverID).Error; err != nil {
			log.Printf("Error loading user %d for reminder: %v", c.ReceiverID, err)
			continue
		}

		emailSubject := "You have unread messages"
		emailBody := fmt.Sprintf(
			"<h1>Unread Messages</h1><p>Hi %s,</p><p>You have %d unread message(s) waiting for you. Log in to catch up with your conversations.</p>",
			user.Name, c.Total,
		)

		go notifications.SendEmail(user.Name, user.Email, emailSubject, emailBody)
	}
}
