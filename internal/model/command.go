package model

// Backend command names.
const (
	CmdGetTagID             = "get_tag_id"
	CmdFetchAllTags         = "fetch_all_tags"
	CmdCreateTag            = "create_tag"
	CmdRenameTag            = "rename_tag"
	CmdDeleteTag            = "delete_tag"
	CmdFetchAllTagTodoItems = "fetch_all_tag_todo_item"

	CmdFetchAllTodoItems = "fetch_all_todo_item"
	CmdSaveFullTodoItem  = "save_full_todo_item"
	CmdEditMessage       = "edit_message"
	CmdEditPriority      = "edit_priority"
	CmdStateRevert       = "state_revert"
	CmdEditTag           = "edit_tag"
	CmdCleanTag          = "clean_tag"
	CmdDeleteTodoItem    = "delete_todo_item"
)

type TagNameArgs struct {
	TagName string `json:"tagName"`
}

type TagIDArgs struct {
	TagID int64 `json:"tagId"`
}

type RenameTagArgs struct {
	TagID   int64  `json:"tagId"`
	TagName string `json:"tagName"`
}

type ItemIDArgs struct {
	ItemID int64 `json:"itemId"`
}

type SaveTodoItemArgs struct {
	TodoItem TodoItem `json:"todoItem"`
}

type EditMessageArgs struct {
	ItemID     int64  `json:"itemId"`
	NewMessage string `json:"newMessage"`
}

type EditPriorityArgs struct {
	ItemID   int64    `json:"itemId"`
	Priority Priority `json:"priority"`
}

type EditTagArgs struct {
	ItemID  int64      `json:"itemId"`
	Mode    TagOpsMode `json:"mode"`
	TagName string     `json:"tagName"`
}
