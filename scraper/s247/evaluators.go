package s247

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recruit-scraper/models"
)

// extractScoutingReport reads the scouting section of a profile: the
// evaluations plus the athletic background paragraph and the skill grades.
// A profile may carry many evaluations on a dedicated page or a single one
// inline; a profile without the section yields all-absent values.
func extractScoutingReport(ctx context.Context, fetcher Fetcher, doc *goquery.Document) ([]models.Evaluator, string, map[string]int, error) {
	section, ok := find(doc.Selection, "section.scouting-report")
	if !ok {
		return nil, "", nil, nil
	}
	background, skills := extractBackgroundSkills(section)

	if link, ok := find(section, "header a.view-all-eval-link"); ok {
		href, _ := link.Attr("href")
		evalDoc, err := fetcher.Fetch(ctx, strings.TrimSpace(href))
		if err != nil {
			return nil, "", nil, err
		}
		return extractEvaluatorList(evalDoc), background, skills, nil
	}
	return extractInlineEvaluator(section), background, skills, nil
}

// extractBackgroundSkills reads the athletic background paragraph and the
// numeric skill grades of a scouting section
func extractBackgroundSkills(section *goquery.Selection) (string, map[string]int) {
	block, ok := find(section, "div.background-and-skills")
	if !ok {
		return "", nil
	}
	var background string
	if body, ok := find(block, "section.athletic-background div.body"); ok {
		background = squash(body.Text())
	}
	var skills map[string]int
	block.Find("section.skills div.body ul li").Each(func(_ int, li *goquery.Selection) {
		label, ok := find(li, "span.text")
		if !ok {
			return
		}
		grade, err := strconv.Atoi(compact(li.Find("b").First().Text()))
		if err != nil {
			return
		}
		if skills == nil {
			skills = make(map[string]int)
		}
		skills[squash(label.Text())] = grade
	})
	return background, skills
}

// extractEvaluatorList reads every evaluation entry of the dedicated
// evaluations page. Entries without a highlights block are page furniture
// and are skipped.
func extractEvaluatorList(doc *goquery.Document) []models.Evaluator {
	var evaluators []models.Evaluator
	doc.Find("section.main-content.list-content ul.evaluation-list > li").Each(func(_ int, li *goquery.Selection) {
		if _, ok := find(li, "ul.highlights-list"); !ok {
			return
		}
		evaluator := models.Evaluator{}
		if id, ok := li.Attr("id"); ok {
			if n, err := strconv.Atoi(compact(id)); err == nil {
				evaluator.ID = &n
			}
		}
		if meta, ok := find(li, "li.eval-meta.evaluator"); ok {
			evaluator.Name = squash(meta.Find("b.text").First().Text())
			evaluator.Region = squash(meta.Find("span.uppercase").First().Text())
		}
		if projection, ok := find(li, "li.eval-meta.projection"); ok {
			evaluator.Projection = squash(projection.Find("b.text").First().Text())
		}
		metas := li.Find("li.eval-meta")
		if metas.Length() > 0 {
			last := metas.Last()
			if a, ok := find(last, `a[target="_blank"]`); ok {
				evaluator.Comparison = squash(a.Text())
				if team, ok := find(last, "span.uppercase"); ok {
					evaluator.ComparisonTeam = squash(team.Text())
				}
			}
		}
		if text, ok := find(li, "p.eval-text"); ok {
			evaluator.EvaluationDate = squash(text.Find("strong.eval-date").First().Text())
			evaluator.Evaluation = evaluationBody(text.Text())
		}
		evaluators = append(evaluators, evaluator)
	})
	return evaluators
}

// extractInlineEvaluator reads the single evaluation a short profile renders
// inline
func extractInlineEvaluator(section *goquery.Selection) []models.Evaluator {
	highlights, ok := find(section, "section.highlights")
	if !ok {
		return nil
	}
	evaluator := models.Evaluator{}
	if h4, ok := find(highlights, "div h4"); ok {
		fields := strings.Fields(h4.Text())
		if len(fields) > 0 {
			evaluator.EvaluationDate = fields[len(fields)-1]
		}
	}
	if name, ok := find(highlights, "div.evaluator"); ok {
		evaluator.Name = squash(name.Find("b").First().Text())
		if evaluator.Name == "" {
			evaluator.Name = squash(name.Text())
		}
		if region, ok := find(name, "span.uppercase"); ok {
			evaluator.Region = squash(region.Text())
		}
	}
	if projection, ok := find(highlights, "div.projection"); ok {
		evaluator.Projection = squash(projection.Find("b").First().Text())
	}
	comparison := highlights.ChildrenFiltered("div").Last()
	if a, ok := find(comparison, "a"); ok {
		evaluator.Comparison = squash(a.Text())
		if team, ok := find(comparison, "span"); ok {
			evaluator.ComparisonTeam = squash(team.Text())
		}
	}
	if text, ok := find(section, "p.eval-text"); ok {
		evaluator.Evaluation = evaluationBody(text.Text())
	}
	return []models.Evaluator{evaluator}
}

// evaluationBody keeps the prose after the last line break of an evaluation
// paragraph, dropping the date header it starts with
func evaluationBody(text string) string {
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	return squash(text)
}
