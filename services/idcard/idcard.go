package idcard

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/student"
)

// ErrAssetMissing is the cause of the warnings raised for image or font files that could not be loaded.
var ErrAssetMissing = errors.New("asset missing")

// Card layout, in pixels.
const (
	Width  = 400
	Height = 250

	photoSize = 80
	photoX    = 20
	detailsX  = 120
	detailsY  = 90
	lineStep  = 20
	qrSize    = 56
	qrMargin  = 6
)

const cardTitle = "STUDENT IDENTITY CARD"

var textColor = image.NewUniform(color.Black)

// Card is a rendered ID card and the asset warnings raised while drawing it.
type Card struct {
	Image    *image.NRGBA
	Warnings []error
}

func (c *Card) warn(err error) {
	c.Warnings = append(c.Warnings, err)
}

// Encode writes the card as a PNG or a JPEG ("png", "jpg", "jpeg").
func (c *Card) Encode(w io.Writer, format string) error {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return errors.Wrapf(err, "unsupported image format %q", format)
	}
	return imaging.Encode(w, c.Image, f)
}

// Save writes the card to path, the format following the extension.
func (c *Card) Save(path string) error {
	return errors.Wrap(imaging.Save(c.Image, path), "saving ID card")
}

// DefaultFilename is the file name offered when saving the card of a student.
func DefaultFilename(roll string) string {
	return "ID_Card_" + roll + ".png"
}

type faces struct {
	title, header, normal font.Face
}

type Generator struct {
	conf     *core.Config
	logger   core.Logger
	students *student.Service

	mu    sync.Mutex // font faces are not safe for concurrent use
	faces faces
	// fontWarnings are replayed on every card.
	fontWarnings []error
}

func NewGenerator(conf *core.Config, logger core.Logger, studentSvc *student.Service) *Generator {
	g := &Generator{conf: conf, logger: logger, students: studentSvc}
	g.faces.title = g.loadFace(conf.Assets.FontBold, gobold.TTF, 20)
	g.faces.header = g.loadFace(conf.Assets.FontBold, gobold.TTF, 14)
	g.faces.normal = g.loadFace(conf.Assets.Font, goregular.TTF, 12)
	return g
}

// loadFace loads the TrueType font at path, falls back to the embedded Go font and finally to basicfont.
func (g *Generator) loadFace(path string, fallback []byte, size float64) font.Face {
	if data, err := os.ReadFile(g.conf.Path(path)); err == nil {
		if face, err := parseFace(data, size); err == nil {
			return face
		}
	}
	g.fontWarnings = append(g.fontWarnings, errors.Wrapf(ErrAssetMissing, "font %s (%vpt)", path, size))
	if face, err := parseFace(fallback, size); err == nil {
		return face
	}
	return basicfont.Face7x13
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Generate renders the ID card of the student with the given roll number.
func (g *Generator) Generate(ctx context.Context, roll string) (*Card, error) {
	s, err := g.students.GetByRoll(ctx, roll)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, core.NewReferenceError("student", "roll_number", core.CleanString(roll))
		}
		return nil, err
	}
	card := g.Render(s)
	for _, w := range card.Warnings {
		g.logger.Warn("ID card: "+w.Error(), map[string]interface{}{"roll_number": s.RollNumber})
	}
	return card, nil
}

// Render draws the card of s.
func (g *Generator) Render(s student.Student) *Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	card := &Card{Warnings: append([]error(nil), g.fontWarnings...)}

	bgPath := g.conf.Assets.IDCardBackground
	if bg, err := imaging.Open(g.conf.Path(bgPath)); err == nil {
		card.Image = imaging.Resize(bg, Width, Height, imaging.Lanczos)
	} else {
		card.Image = imaging.New(Width, Height, color.White)
		card.warn(errors.Wrapf(ErrAssetMissing, "ID card background %s", bgPath))
	}

	g.drawCentered(card.Image, g.faces.title, g.conf.College.Name, 20)
	g.drawCentered(card.Image, g.faces.header, cardTitle, 45)
	g.drawCentered(card.Image, g.faces.normal, g.conf.College.Address, 65)

	photo, err := g.photo(s.ProfilePicturePath)
	if err == nil {
		card.Image = imaging.Overlay(card.Image, photo, image.Pt(photoX, detailsY), 1.0)
	} else {
		if s.ProfilePicturePath != "" {
			card.warn(errors.Wrapf(ErrAssetMissing, "profile picture %s", s.ProfilePicturePath))
		}
		g.drawText(card.Image, g.faces.normal, "No Photo", photoX, detailsY+30)
	}

	lines := []string{
		"Name: " + s.Name,
		"Roll No: " + s.RollNumber,
		"Course: " + s.CourseName + " (" + s.AcademicYearName + ")",
		"DOB: " + s.DateOfBirth.String,
		"Blood Group: " + s.BloodGroup,
		"Contact: " + s.ContactNumber,
		"Enrollment Date: " + s.EnrollmentDate,
	}
	for i, line := range lines {
		g.drawText(card.Image, g.faces.normal, line, detailsX, detailsY+i*lineStep)
	}

	if qr, err := qrcode.New(s.RollNumber, qrcode.Medium); err == nil {
		qr.DisableBorder = true
		card.Image = imaging.Overlay(card.Image, qr.Image(qrSize), image.Pt(Width-qrSize-qrMargin, Height-qrSize-qrMargin), 1.0)
	}
	return card
}

func (g *Generator) photo(path string) (image.Image, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	img, err := imaging.Open(g.conf.Path(path))
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, photoSize, photoSize, imaging.Lanczos), nil
}

// drawText draws s with its top-left corner at (x, y).
func (g *Generator) drawText(dst *image.NRGBA, face font.Face, s string, x, y int) {
	d := font.Drawer{Dst: dst, Src: textColor, Face: face}
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent}
	d.DrawString(s)
}

// drawCentered draws s centered horizontally on the card and vertically on cy.
func (g *Generator) drawCentered(dst *image.NRGBA, face font.Face, s string, cy int) {
	d := font.Drawer{Dst: dst, Src: textColor, Face: face}
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: (fixed.I(Width) - d.MeasureString(s)) / 2,
		Y: fixed.I(cy) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(s)
}

// CheckAssets logs a warning for every configured asset file that is missing and returns their paths.
func CheckAssets(conf *core.Config, logger core.Logger) []string {
	var missing []string
	for name, path := range map[string]string{
		"logo":               conf.Assets.Logo,
		"college info":       conf.Assets.CollegeInfo,
		"background":         conf.Assets.Background,
		"ID card background": conf.Assets.IDCardBackground,
		"font":               conf.Assets.Font,
		"bold font":          conf.Assets.FontBold,
	} {
		if _, err := os.Stat(conf.Path(path)); err != nil {
			missing = append(missing, path)
			logger.Warn(errors.Wrapf(ErrAssetMissing, "%s %s", name, path).Error())
		}
	}
	return missing
}
