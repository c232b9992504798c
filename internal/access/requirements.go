package access

import "fmt"

// Role names known to the policy. ADMIN is seeded with the super-admin flag
// set, so it never reaches the role/permission steps of Decide.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleAgency   = "AGENCY"
)

// Permission keys. Seeded into the permission table at boot and granted to
// roles by the super admin.
const (
	PermCreateCandidate   = "CREATE_CANDIDATE"
	PermReadCandidate     = "READ_CANDIDATE"
	PermUpdateCandidate   = "UPDATE_CANDIDATE"
	PermDeleteCandidate   = "DELETE_CANDIDATE"
	PermCreateClient      = "CREATE_CLIENT"
	PermReadClient        = "READ_CLIENT"
	PermUpdateClient      = "UPDATE_CLIENT"
	PermDeleteClient      = "DELETE_CLIENT"
	PermCreateJobTemplate = "CREATE_JOB_TEMPLATE"
	PermReadJobTemplate   = "READ_JOB_TEMPLATE"
	PermUpdateJobTemplate = "UPDATE_JOB_TEMPLATE"
	PermDeleteJobTemplate = "DELETE_JOB_TEMPLATE"
	PermCreateJobVacancy  = "CREATE_JOB_VACANCY"
	PermReadJobVacancy    = "READ_JOB_VACANCY"
	PermUpdateJobVacancy  = "UPDATE_JOB_VACANCY"
	PermDeleteJobVacancy  = "DELETE_JOB_VACANCY"
)

// AllPermissionKeys lists every permission key for seeding.
var AllPermissionKeys = []string{
	PermCreateCandidate, PermReadCandidate, PermUpdateCandidate, PermDeleteCandidate,
	PermCreateClient, PermReadClient, PermUpdateClient, PermDeleteClient,
	PermCreateJobTemplate, PermReadJobTemplate, PermUpdateJobTemplate, PermDeleteJobTemplate,
	PermCreateJobVacancy, PermReadJobVacancy, PermUpdateJobVacancy, PermDeleteJobVacancy,
}

// Operation identifiers. Each protected endpoint registers one of these with
// middleware.Authorize; the requirement attached to it lives in the table
// below instead of being scattered over route definitions.
const (
	OpCandidateCreate = "candidate.create"
	OpCandidateList   = "candidate.list"
	OpCandidateGet    = "candidate.get"
	OpCandidateUpdate = "candidate.update"
	OpCandidateDelete = "candidate.delete"

	OpClientCreate = "client.create"
	OpClientList   = "client.list"
	OpClientGet    = "client.get"
	OpClientUpdate = "client.update"
	OpClientDelete = "client.delete"

	OpTemplateCreate = "template.create"
	OpTemplateList   = "template.list"
	OpTemplateGet    = "template.get"
	OpTemplateUpdate = "template.update"
	OpTemplateDelete = "template.delete"

	OpVacancyCreate       = "vacancy.create"
	OpVacancyList         = "vacancy.list"
	OpVacancyGet          = "vacancy.get"
	OpVacancyUpdate       = "vacancy.update"
	OpVacancyDelete       = "vacancy.delete"
	OpVacancyAssignAgency = "vacancy.assign_agency"
	OpVacancyRemoveAgency = "vacancy.remove_agency"

	// Administration of users, roles and permissions is super-admin only;
	// the short circuit in Decide is the only way through.
	OpUserManage       = "user.manage"
	OpRoleManage       = "role.manage"
	OpPermissionManage = "permission.manage"
)

var requirements = map[string]Requirement{
	OpCandidateCreate: {Roles: []string{RoleAdmin, RoleAgency}, Permissions: []string{PermCreateCandidate}},
	OpCandidateList:   {Roles: []string{RoleAdmin, RoleEmployee, RoleAgency}, Permissions: []string{PermReadCandidate}},
	OpCandidateGet:    {Roles: []string{RoleAdmin, RoleAgency}, Permissions: []string{PermReadCandidate}},
	OpCandidateUpdate: {Roles: []string{RoleAgency}, Permissions: []string{PermUpdateCandidate}},
	OpCandidateDelete: {Roles: []string{RoleAgency}, Permissions: []string{PermDeleteCandidate}},

	OpClientCreate: {Roles: []string{RoleAdmin}, Permissions: []string{PermCreateClient}},
	OpClientList:   {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermReadClient}},
	OpClientGet:    {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermReadClient}},
	OpClientUpdate: {Roles: []string{RoleAdmin}, Permissions: []string{PermUpdateClient}},
	OpClientDelete: {Roles: []string{RoleAdmin}, Permissions: []string{PermDeleteClient}},

	OpTemplateCreate: {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermCreateJobTemplate}},
	OpTemplateList:   {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermReadJobTemplate}},
	OpTemplateGet:    {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermReadJobTemplate}},
	OpTemplateUpdate: {Roles: []string{RoleAdmin, RoleEmployee}, Permissions: []string{PermUpdateJobTemplate}},
	OpTemplateDelete: {Roles: []string{RoleAdmin}, Permissions: []string{PermDeleteJobTemplate}},

	OpVacancyCreate:       {Roles: []string{RoleEmployee}, Permissions: []string{PermCreateJobVacancy}},
	OpVacancyList:         {Roles: []string{RoleAdmin, RoleEmployee, RoleAgency}, Permissions: []string{PermReadJobVacancy}},
	OpVacancyGet:          {Roles: []string{RoleAdmin, RoleEmployee, RoleAgency}, Permissions: []string{PermReadJobVacancy}},
	OpVacancyUpdate:       {Roles: []string{RoleEmployee}, Permissions: []string{PermUpdateJobVacancy}},
	OpVacancyDelete:       {Roles: []string{RoleEmployee}, Permissions: []string{PermDeleteJobVacancy}},
	OpVacancyAssignAgency: {Roles: []string{RoleEmployee}, Permissions: []string{PermUpdateJobVacancy}},
	OpVacancyRemoveAgency: {Roles: []string{RoleEmployee}, Permissions: []string{PermUpdateJobVacancy}},

	OpUserManage:       {SuperAdminOnly: true},
	OpRoleManage:       {SuperAdminOnly: true},
	OpPermissionManage: {SuperAdminOnly: true},
}

// RequirementFor returns the requirement declared for an operation. Unknown
// operation ids are programmer errors, caught at route registration.
func RequirementFor(op string) Requirement {
	req, ok := requirements[op]
	if !ok {
		panic(fmt.Sprintf("access: no requirement registered for operation '%s'", op))
	}
	return req
}
