package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"

	config "github.com/examchat/backend/configs"
	"github.com/examchat/backend/utils"
)

const avatarFolder = "examchat_avatars"

// GenerateUploadSignature signs the parameters for a direct avatar upload
// from the client to Cloudinary.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return utils.Error(c, "Failed to initialize Cloudinary", fiber.StatusInternalServerError)
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return utils.Error(c, "Failed to parse Cloudinary URL", fiber.StatusInternalServerError)
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: avatarFolder,
	})
	if err != nil {
		return utils.Error(c, "Failed to prepare signature params", fiber.StatusInternalServerError)
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return utils.Error(c, "Failed to sign upload params", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    avatarFolder,
	}, "Upload signature generated!", fiber.StatusOK)
}
