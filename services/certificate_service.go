package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/examchat/backend/configs"
	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/google/uuid"
)

const certificateTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; text-align: center; padding: 80px; }
h1 { font-size: 42px; letter-spacing: 2px; }
.name { font-size: 32px; margin: 40px 0 10px; }
.detail { font-size: 18px; color: #444; }
</style></head>
<body>
<h1>Certificate of Achievement</h1>
<p class="detail">This certifies that</p>
<p class="name">{{.UserName}}</p>
<p class="detail">answered every question correctly on</p>
<p class="name">{{.ExamName}}</p>
<p class="detail">{{.TotalQuestions}} out of {{.TotalQuestions}} correct &middot; {{.CompletionDate}}</p>
</body>
</html>`

// CheckAndGenerateCertificate issues a certificate when a submission answered
// every question of a non-empty exam correctly. Failures are logged, never
// surfaced: the submission response has already been sent.
func CheckAndGenerateCertificate(userID uint, exam models.Exam, report *SubmissionReport) {
	if report.TotalQuestions == 0 || report.CorrectAnswers != report.TotalQuestions {
		return
	}

	title := fmt.Sprintf("Perfect Score: %s", exam.Name)

	var existing models.Certificate
	if err := database.DB.Where("user_id = ? AND exam_id = ?", userID, exam.ID).First(&existing).Error; err == nil {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		log.Printf("🔥 Failed to load user %d for certificate: %v", userID, err)
		return
	}

	htmlData, err := renderCertificateHTML(user.Name, exam.Name, report.TotalQuestions)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, userID)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	cert := models.Certificate{
		UserID:         userID,
		ExamID:         exam.ID,
		Title:          title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := database.DB.Create(&cert).Error; err != nil {
		log.Printf("🔥 Failed to save certificate for user %d: %v", userID, err)
		return
	}
	log.Printf("✅ Issued certificate '%s' to user %d.", title, userID)
}

func renderCertificateHTML(userName, examName string, totalQuestions int) (string, error) {
	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		UserName       string
		ExamName       string
		TotalQuestions int
		CompletionDate string
	}{
		UserName:       userName,
		ExamName:       examName,
		TotalQuestions: totalQuestions,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, userID uint) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%d_%s", userID, uuid.New().String()),
		Folder:       "examchat_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
