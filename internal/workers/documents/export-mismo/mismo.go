package exportmismo

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"homeready-workers/internal/models"
	"homeready-workers/internal/readiness"
)

const (
	mismoNamespace = "http://www.mismo.org/residential/2009/schemas"
	dataVersion    = "3.4"
)

// MISMO 3.4 MESSAGE envelope, trimmed to the containers a readiness
// assessment can populate.
type message struct {
	XMLName       xml.Name      `xml:"MESSAGE"`
	Xmlns         string        `xml:"xmlns,attr"`
	AboutVersions aboutVersions `xml:"ABOUT_VERSIONS"`
	DealSets      dealSets      `xml:"DEAL_SETS"`
}

type aboutVersions struct {
	AboutVersion aboutVersion `xml:"ABOUT_VERSION"`
}

type aboutVersion struct {
	DataVersionIdentifier string `xml:"DataVersionIdentifier"`
}

type dealSets struct {
	DealSet dealSet `xml:"DEAL_SET"`
}

type dealSet struct {
	Deals deals `xml:"DEALS"`
}

type deals struct {
	Deal deal `xml:"DEAL"`
}

type deal struct {
	Parties     parties      `xml:"PARTIES"`
	Assets      *assets      `xml:"ASSETS,omitempty"`
	Liabilities *liabilities `xml:"LIABILITIES,omitempty"`
}

type parties struct {
	Party []party `xml:"PARTY"`
}

type party struct {
	Individual individual `xml:"INDIVIDUAL"`
	Roles      roles      `xml:"ROLES"`
}

type individual struct {
	Name          name           `xml:"NAME"`
	ContactPoints *contactPoints `xml:"CONTACT_POINTS,omitempty"`
}

type name struct {
	FirstName string `xml:"FirstName"`
	LastName  string `xml:"LastName"`
}

type contactPoints struct {
	ContactPoint []contactPoint `xml:"CONTACT_POINT"`
}

type contactPoint struct {
	Email     *contactPointEmail     `xml:"CONTACT_POINT_EMAIL,omitempty"`
	Telephone *contactPointTelephone `xml:"CONTACT_POINT_TELEPHONE,omitempty"`
}

type contactPointEmail struct {
	Value string `xml:"ContactPointEmailValue"`
}

type contactPointTelephone struct {
	Value string `xml:"ContactPointTelephoneValue"`
}

type roles struct {
	Role role `xml:"ROLE"`
}

type role struct {
	Borrower   borrower   `xml:"BORROWER"`
	RoleDetail roleDetail `xml:"ROLE_DETAIL"`
}

type roleDetail struct {
	PartyRoleType string `xml:"PartyRoleType"`
}

type borrower struct {
	Detail        *borrowerDetail `xml:"BORROWER_DETAIL,omitempty"`
	Declaration   *declaration    `xml:"DECLARATION,omitempty"`
	Residences    *residences     `xml:"RESIDENCES,omitempty"`
	CurrentIncome currentIncome   `xml:"CURRENT_INCOME"`
	Employers     *employers      `xml:"EMPLOYERS,omitempty"`
}

type borrowerDetail struct {
	CommunityPropertyStateResidentIndicator bool `xml:"CommunityPropertyStateResidentIndicator"`
	DependentCount                          int  `xml:"DependentCount"`
	SelfDeclaredMilitaryServiceIndicator    bool `xml:"SelfDeclaredMilitaryServiceIndicator"`
}

type declaration struct {
	FirstTimeHomebuyerIndicator  bool   `xml:"FirstTimeHomebuyerIndicator"`
	HomeownerPastThreeYearsType  string `xml:"HomeownerPastThreeYearsType"`
	IntentToOccupyType           string `xml:"IntentToOccupyType"`
	OutstandingJudgmentsIndicator bool  `xml:"OutstandingJudgmentsIndicator"`
	PartyToLawsuitIndicator      bool   `xml:"PartyToLawsuitIndicator"`
	PresentlyDelinquentIndicator bool   `xml:"PresentlyDelinquentIndicator"`
}

type residences struct {
	Residence residence `xml:"RESIDENCE"`
}

type residence struct {
	Address address         `xml:"ADDRESS"`
	Detail  residenceDetail `xml:"RESIDENCE_DETAIL"`
}

type address struct {
	AddressLineText string `xml:"AddressLineText"`
	CityName        string `xml:"CityName"`
	StateCode       string `xml:"StateCode"`
	PostalCode      string `xml:"PostalCode"`
}

type residenceDetail struct {
	BorrowerResidencyDurationMonthsCount int    `xml:"BorrowerResidencyDurationMonthsCount"`
	BorrowerResidencyType                string `xml:"BorrowerResidencyType"`
}

type currentIncome struct {
	Items currentIncomeItems `xml:"CURRENT_INCOME_ITEMS"`
}

type currentIncomeItems struct {
	Item []currentIncomeItem `xml:"CURRENT_INCOME_ITEM"`
}

type currentIncomeItem struct {
	Detail currentIncomeItemDetail `xml:"CURRENT_INCOME_ITEM_DETAIL"`
}

type currentIncomeItemDetail struct {
	CurrentIncomeMonthlyTotalAmount int    `xml:"CurrentIncomeMonthlyTotalAmount"`
	IncomeType                      string `xml:"IncomeType"`
}

type employers struct {
	Employer employer `xml:"EMPLOYER"`
}

type employer struct {
	Employment employment `xml:"EMPLOYMENT"`
}

type employment struct {
	EmploymentStatusType string `xml:"EmploymentStatusType"`
}

type assets struct {
	Asset []asset `xml:"ASSET"`
}

type asset struct {
	Detail assetDetail `xml:"ASSET_DETAIL"`
	Holder assetHolder `xml:"ASSET_HOLDER"`
}

type assetDetail struct {
	AssetType string `xml:"AssetType"`
}

type assetHolder struct {
	Detail assetHolderDetail `xml:"ASSET_HOLDER_DETAIL"`
}

type assetHolderDetail struct {
	AssetCashOrMarketValueAmount int `xml:"AssetCashOrMarketValueAmount"`
}

type liabilities struct {
	Summary liabilitySummary `xml:"LIABILITY_SUMMARY"`
}

type liabilitySummary struct {
	TotalMonthlyLiabilityPaymentAmount float64 `xml:"TotalMonthlyLiabilityPaymentAmount"`
}

// buildMessage assembles the MISMO export for a completed assessment.
func buildMessage(lead *models.Lead) *message {
	borrowerParty := party{
		Individual: individual{
			Name: name{FirstName: lead.FirstName, LastName: lead.LastName},
			ContactPoints: &contactPoints{
				ContactPoint: []contactPoint{
					{Email: &contactPointEmail{Value: lead.Email}},
					{Telephone: &contactPointTelephone{Value: lead.Phone}},
				},
			},
		},
		Roles: roles{
			Role: role{
				Borrower: borrower{
					Detail: &borrowerDetail{
						SelfDeclaredMilitaryServiceIndicator: lead.VAEligible == "Yes",
					},
					Declaration: &declaration{
						FirstTimeHomebuyerIndicator: isFirstTimeBuyer(lead.FirstTimeBuyer),
						HomeownerPastThreeYearsType: yesNo(!isFirstTimeBuyer(lead.FirstTimeBuyer)),
						IntentToOccupyType:          "Yes",
					},
					Residences: &residences{
						Residence: residence{
							Address: address{
								AddressLineText: lead.StreetAddress,
								CityName:        lead.City,
								StateCode:       lead.State,
								PostalCode:      lead.Zip,
							},
							Detail: residenceDetail{
								BorrowerResidencyDurationMonthsCount: residencyMonths(lead.TimeAtAddress),
								BorrowerResidencyType:                residencyType(lead.CurrentHousing),
							},
						},
					},
					CurrentIncome: incomeOf(lead.GrossAnnualIncome),
					Employers: &employers{
						Employer: employer{
							Employment: employment{
								EmploymentStatusType: employmentStatus(lead.EmploymentType),
							},
						},
					},
				},
				RoleDetail: roleDetail{PartyRoleType: "Borrower"},
			},
		},
	}

	allParties := []party{borrowerParty}
	if lead.HasCoBorrower {
		coParty := party{
			Individual: individual{
				Name: name{FirstName: lead.CoBorrowerFirstName, LastName: lead.CoBorrowerLastName},
			},
			Roles: roles{
				Role: role{
					Borrower: borrower{
						CurrentIncome: incomeOf(lead.CoBorrowerGrossAnnualIncome),
					},
					RoleDetail: roleDetail{PartyRoleType: "Borrower"},
				},
			},
		}
		if lead.CoBorrowerEmail != "" {
			coParty.Individual.ContactPoints = &contactPoints{
				ContactPoint: []contactPoint{
					{Email: &contactPointEmail{Value: lead.CoBorrowerEmail}},
				},
			}
		}
		allParties = append(allParties, coParty)
	}

	return &message{
		Xmlns: mismoNamespace,
		AboutVersions: aboutVersions{
			AboutVersion: aboutVersion{DataVersionIdentifier: dataVersion},
		},
		DealSets: dealSets{
			DealSet: dealSet{
				Deals: deals{
					Deal: deal{
						Parties: parties{Party: allParties},
						Assets: &assets{
							Asset: []asset{
								{
									Detail: assetDetail{AssetType: "SavingsAccount"},
									Holder: assetHolder{
										Detail: assetHolderDetail{
											AssetCashOrMarketValueAmount: int(math.Round(lead.DownPaymentSaved)),
										},
									},
								},
							},
						},
						Liabilities: &liabilities{
							Summary: liabilitySummary{
								TotalMonthlyLiabilityPaymentAmount: readiness.DebtBandMidpoint(lead.MonthlyDebtPayments),
							},
						},
					},
				},
			},
		},
	}
}

// marshalMessage renders the export with the XML declaration prepended.
func marshalMessage(msg *message) (string, error) {
	body, err := xml.MarshalIndent(msg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal MISMO message: %w", err)
	}
	return xml.Header + string(body), nil
}

func incomeOf(annual float64) currentIncome {
	return currentIncome{
		Items: currentIncomeItems{
			Item: []currentIncomeItem{
				{
					Detail: currentIncomeItemDetail{
						CurrentIncomeMonthlyTotalAmount: int(math.Round(annual / 12)),
						IncomeType:                      "Base",
					},
				},
			},
		},
	}
}

func residencyMonths(timeAtAddress string) int {
	switch timeAtAddress {
	case "Less than 1 year":
		return 6
	case "1-2 years":
		return 18
	case "2+ years":
		return 36
	default:
		return 12
	}
}

func residencyType(currentHousing string) string {
	if currentHousing == "Renting" {
		return "Rent"
	}
	return "Own"
}

func employmentStatus(employmentType string) string {
	switch {
	case strings.HasPrefix(employmentType, "W-2"):
		return "Current"
	case employmentType == "Self-Employed", employmentType == "1099 Contractor":
		return "SelfEmployed"
	case employmentType == "Retired":
		return "Retired"
	default:
		return "Other"
	}
}

func isFirstTimeBuyer(firstTimeBuyer string) bool {
	return strings.Contains(firstTimeBuyer, "Yes")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
