package services

import "github.com/AnishKajan/Taskmanager-Project/model"

// CanAccess is the single authorization predicate for tasks: the requester
// must be the owner or a current collaborator. Every mutation checks it,
// and listings filter by the same rule at the query level.
func CanAccess(task *model.Task, userID, userEmail string) bool {
	if task == nil {
		return false
	}
	return task.OwnerID == userID || task.HasCollaborator(userEmail)
}
