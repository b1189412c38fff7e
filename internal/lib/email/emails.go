package email

func (c *Client) SendWelcomeEmail(to, username string) error {
	data := map[string]string{
		"Username": username,
	}

	return c.SendEmail(
		to,
		"Welcome to the Star Wars API!",
		TemplateWelcome,
		data,
	)
}
