package policy

import "sort"

// Action names of the closed default set.
const (
	ActionReadContent   = "read_content"
	ActionSubmitForms   = "submit_forms"
	ActionMakePurchases = "make_purchases"
	ActionModifyAccount = "modify_account"
	ActionAccessAPI     = "access_api"
	ActionDownloadFiles = "download_files"
	ActionUploadFiles   = "upload_files"
	ActionSendMessages  = "send_messages"
	ActionDeleteData    = "delete_data"
	ActionCreateContent = "create_content"
)

// KnownActions lists the closed action set in documentation order.
var KnownActions = []string{
	ActionReadContent,
	ActionSubmitForms,
	ActionMakePurchases,
	ActionModifyAccount,
	ActionAccessAPI,
	ActionDownloadFiles,
	ActionUploadFiles,
	ActionSendMessages,
	ActionDeleteData,
	ActionCreateContent,
}

// AllowedActions maps an action name to whether agents may perform it.
// Names outside KnownActions are kept as declared.
type AllowedActions map[string]bool

// DefaultAllowedActions returns the default map: read_content is allowed,
// every other known action is denied.
func DefaultAllowedActions() AllowedActions {
	actions := make(AllowedActions, len(KnownActions))
	for _, name := range KnownActions {
		actions[name] = false
	}
	actions[ActionReadContent] = true
	return actions
}

// Allows reports whether the action is permitted. Unknown actions are denied.
func (a AllowedActions) Allows(action string) bool {
	return a[action]
}

// IsKnownAction reports whether name belongs to the closed default set.
func IsKnownAction(name string) bool {
	for _, known := range KnownActions {
		if known == name {
			return true
		}
	}
	return false
}

// Extra returns the declared action names outside KnownActions, sorted.
func (a AllowedActions) Extra() []string {
	var extra []string
	for name := range a {
		if !IsKnownAction(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra
}
