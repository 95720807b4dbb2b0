package s247

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// CrystalBallCollector scrapes the current-target-predictions listing for a
// recruiting class year
type CrystalBallCollector struct {
	year    int
	top     int
	fetcher Fetcher
	cache   *Cache
	log     *zap.SugaredLogger
}

// NewCrystalBallCollector creates a collector for the given class year
func NewCrystalBallCollector(year, top int, fetcher Fetcher, cache *Cache, log *zap.SugaredLogger) *CrystalBallCollector {
	return &CrystalBallCollector{year: year, top: top, fetcher: fetcher, cache: cache, log: log}
}

// Players collects the prediction rows into PlayerCrystalBall records
func (c *CrystalBallCollector) Players(ctx context.Context) ([]models.PlayerCrystalBall, error) {
	baseURL := CrystalBallURL(c.year)
	fragments, ok := c.cache.Get(baseURL, c.top)
	if !ok {
		var err error
		fragments, err = Collect(ctx, c.fetcher, c.log, baseURL, c.top, PageQuery, CrystalBallFragments)
		if err != nil {
			return nil, err
		}
		c.cache.Put(baseURL, c.top, fragments)
	}

	players := make([]models.PlayerCrystalBall, 0, len(fragments))
	for _, fragment := range fragments {
		player, err := extractCrystalBall(fragment)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	c.log.Infof("collected %d predictions", len(players))
	return players, nil
}

// extractCrystalBall reads one prediction row. The recruit name cell packs
// name and class year as "Name (2025)" and the second span packs position,
// height and weight as "POS / 6-2 / 180".
func extractCrystalBall(fragment *goquery.Selection) (*models.PlayerCrystalBall, error) {
	details, err := requireSel(fragment, "li.name")
	if err != nil {
		return nil, err
	}
	link, err := requireSel(details, "a")
	if err != nil {
		return nil, err
	}
	href, _ := link.Attr("href")
	player := &models.PlayerCrystalBall{
		AbstractPlayer: models.AbstractPlayer{
			URL:    strings.TrimSpace(href),
			NameID: lastPathSegment(href),
		},
	}
	name := squash(link.Text())
	if n, yearText, ok := strings.Cut(name, "("); ok {
		player.RecruitName = strings.TrimSpace(n)
		if year, err := strconv.Atoi(compact(strings.TrimSuffix(strings.TrimSpace(yearText), ")"))); err == nil {
			player.ClassYear = &year
		}
	} else {
		player.RecruitName = name
	}

	spans := details.Find("span")
	if spans.Length() >= 3 {
		metrics := strings.SplitN(squash(spans.Eq(1).Text()), " / ", 3)
		if len(metrics) == 3 {
			player.Position = metrics[0]
			player.Height = metrics[1]
			weightText := strings.TrimSpace(metrics[2])
			if weightText != "" {
				weight, err := strconv.Atoi(weightText)
				if err != nil {
					return nil, &ExtractionError{Selector: "li.name span", Detail: fmt.Sprintf("non-numeric weight %q", weightText)}
				}
				player.Weight = &weight
			}
		}
		ranking := spans.Eq(2)
		player.Rating = parseScore(ranking.Find("b").First().Text())
		// Star icons render even for unrated recruits; the count only
		// means something alongside a rating.
		if player.Rating != nil {
			stars := ranking.Find("span.icon-starsolid.yellow").Length()
			player.Stars = &stars
		}
	}

	predictor, err := requireSel(fragment, "li.predicted-by")
	if err != nil {
		return nil, err
	}
	info, err := requireSel(predictor, "a")
	if err != nil {
		return nil, err
	}
	predictorLink, _ := info.Attr("href")
	player.PredictorLink = strings.TrimSpace(predictorLink)
	if parts := strings.Split(player.PredictorLink, "/"); len(parts) >= 3 {
		player.PredictorID = parts[len(parts)-3]
	}
	infoSpans := info.Find("span")
	if infoSpans.Length() >= 2 {
		player.PredictorName = squash(infoSpans.Eq(0).Text())
		player.PredictorAffiliation = squash(infoSpans.Eq(1).Text())
	}

	if accuracy, ok := find(fragment, "li.accuracy"); ok {
		accSpans := accuracy.Find("span")
		if accSpans.Length() >= 2 {
			player.PredictorAccuracy = parsePercent(accSpans.Eq(1).Text())
		}
	}

	if prediction, ok := find(fragment, "li.prediction"); ok {
		if img, ok := find(prediction, "div img"); ok {
			player.PredictionTeam, _ = img.Attr("alt")
		}
		if date, ok := find(prediction, "span.prediction-date"); ok {
			player.PredictionDate = squash(date.Text())
		}
	}

	confidence, err := requireSel(fragment, "li.confidence")
	if err != nil {
		return nil, err
	}
	bolds := confidence.Find("b")
	if bolds.Length() < 2 {
		return nil, &ExtractionError{Selector: "li.confidence b", Detail: "expected score and label"}
	}
	score, convErr := strconv.Atoi(compact(bolds.Eq(0).Text()))
	if convErr != nil {
		return nil, &ExtractionError{Selector: "li.confidence b", Detail: fmt.Sprintf("non-numeric score %q", compact(bolds.Eq(0).Text()))}
	}
	player.ConfidenceScore = score
	text := squash(bolds.Eq(1).Text())
	if text == "Med" {
		text = "Medium"
	}
	player.ConfidenceText = text
	_, player.VIPScoop = find(confidence, "a.scoop-link")

	return player, nil
}
