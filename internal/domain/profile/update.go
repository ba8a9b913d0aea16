package profile

import "time"

// Update carries a partial profile. Nil fields are left untouched so a
// request body can omit anything it does not want to change.
type Update struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	Province    *string `json:"province"`
	Title       *string `json:"title"`
	ProfilePic  *string `json:"profilePic"`
	CoverPic    *string `json:"coverPic"`

	DeveloperInfo *DeveloperInfoPatch `json:"developerInfo"`
	RecruiterInfo *RecruiterInfoPatch `json:"recruiterInfo"`
}

type DeveloperInfoPatch struct {
	Skills            *[]string       `json:"skills"`
	Experience        *float64        `json:"experience"`
	GitHubProfile     *GitHubProfile  `json:"githubProfile"`
	WorkExperience    *WorkExperience `json:"workExperience"`
	PortfolioURL      *string         `json:"portfolioUrl"`
	Bio               *string         `json:"bio"`
	ReputationScore   *float64        `json:"reputationScore"`
	Level             *string         `json:"level"`
	Education         *[]string       `json:"education"`
	CompletedProjects *int            `json:"completedProjects"`
}

type RecruiterInfoPatch struct {
	Company           *string  `json:"company"`
	Position          *string  `json:"position"`
	CompanyWebsite    *string  `json:"companyWebsite"`
	Industry          *string  `json:"industry"`
	CompanySize       *string  `json:"companySize"`
	ReputationScore   *float64 `json:"reputationScore"`
	TotalHires        *int     `json:"totalHires"`
	ActiveJobPostings *int     `json:"activeJobPostings"`
}

// Apply merges an update onto the profile: top-level fields shallowly, the
// role-specific sub-object field by field so a partial developerInfo or
// recruiterInfo does not clobber its siblings. Only the sub-object matching
// the caller's role is merged. LastActive is refreshed on every update.
func (p *Profile) Apply(u Update, role string, now time.Time) {
	setString(&p.FirstName, u.FirstName)
	setString(&p.LastName, u.LastName)
	setString(&p.Phone, u.Phone)
	setString(&p.DateOfBirth, u.DateOfBirth)
	setString(&p.Gender, u.Gender)
	setString(&p.Country, u.Country)
	setString(&p.City, u.City)
	setString(&p.District, u.District)
	setString(&p.Province, u.Province)
	setString(&p.Title, u.Title)
	setString(&p.ProfilePic, u.ProfilePic)
	setString(&p.CoverPic, u.CoverPic)

	if role == "developer" && u.DeveloperInfo != nil {
		if p.DeveloperInfo == nil {
			p.DeveloperInfo = &DeveloperInfo{}
		}
		p.DeveloperInfo.apply(u.DeveloperInfo)
	} else if role == "recruiter" && u.RecruiterInfo != nil {
		if p.RecruiterInfo == nil {
			p.RecruiterInfo = &RecruiterInfo{}
		}
		p.RecruiterInfo.apply(u.RecruiterInfo)
	}

	p.LastActive = now
}

func (d *DeveloperInfo) apply(patch *DeveloperInfoPatch) {
	if patch.Skills != nil {
		d.Skills = *patch.Skills
	}
	if patch.Experience != nil {
		d.Experience = *patch.Experience
	}
	if patch.GitHubProfile != nil {
		d.GitHubProfile = patch.GitHubProfile
	}
	if patch.WorkExperience != nil {
		d.WorkExperience = patch.WorkExperience
	}
	setString(&d.PortfolioURL, patch.PortfolioURL)
	setString(&d.Bio, patch.Bio)
	if patch.ReputationScore != nil {
		d.ReputationScore = *patch.ReputationScore
	}
	setString(&d.Level, patch.Level)
	if patch.Education != nil {
		d.Education = *patch.Education
	}
	if patch.CompletedProjects != nil {
		d.CompletedProjects = *patch.CompletedProjects
	}
}

func (r *RecruiterInfo) apply(patch *RecruiterInfoPatch) {
	setString(&r.Company, patch.Company)
	setString(&r.Position, patch.Position)
	setString(&r.CompanyWebsite, patch.CompanyWebsite)
	setString(&r.Industry, patch.Industry)
	setString(&r.CompanySize, patch.CompanySize)
	if patch.ReputationScore != nil {
		r.ReputationScore = *patch.ReputationScore
	}
	if patch.TotalHires != nil {
		r.TotalHires = *patch.TotalHires
	}
	if patch.ActiveJobPostings != nil {
		r.ActiveJobPostings = *patch.ActiveJobPostings
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
